package middleware

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
)

// RequestValidator adapts go-playground/validator to echo.Validator.
type RequestValidator struct {
	v *validator.Validate
}

func NewRequestValidator(v *validator.Validate) *RequestValidator {
	return &RequestValidator{v: v}
}

// Validate reports failures as one validation error naming the offending
// fields.
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	sort.Strings(fields)
	return apperr.Validationf("invalid fields: %s", strings.Join(fields, ", "))
}
