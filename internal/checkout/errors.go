package checkout

import (
	"fmt"
	"strings"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
)

var (
	ErrEmptyCart         = apperr.Validation("cart is empty")
	ErrIllegalTransition = apperr.Conflict("checkout step not allowed")
	ErrBusy              = apperr.Conflict("checkout is already being completed")
	ErrNoSession         = apperr.NotFound("no checkout in progress")
)

// MissingDatesError refuses a checkout whose cart still has entries without a
// travel date.
type MissingDatesError struct {
	PackageIDs []string
}

func (e *MissingDatesError) Error() string {
	return fmt.Sprintf("travel date required for packages: %s", strings.Join(e.PackageIDs, ", "))
}

func (e *MissingDatesError) Is(target error) bool {
	return target == apperr.ErrValidation
}
