package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

// Filter narrows a package list. Zero-valued fields match everything.
type Filter struct {
	Treatment string
	Location  string
	Search    string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
}

func (f Filter) Validate() error {
	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		return apperr.Validation("min price cannot be negative")
	}
	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		return apperr.Validation("max price cannot be negative")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return apperr.Validation("min price cannot exceed max price")
	}
	return nil
}

// Apply returns the packages matching every set predicate. The input slice is
// not modified.
func (f Filter) Apply(pkgs []models.Package) []models.Package {
	treatment := normalize(f.Treatment)
	location := normalize(f.Location)
	search := normalize(f.Search)

	out := make([]models.Package, 0, len(pkgs))
	for _, p := range pkgs {
		if treatment != "" && !contains(p.Treatment, treatment) {
			continue
		}
		if location != "" && !contains(p.Location, location) {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if search != "" && !contains(p.Title, search) && !contains(p.Description, search) && !contains(p.Hospital, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// contains reports whether needle, already lower-cased, occurs in field.
func contains(field, needle string) bool {
	return strings.Contains(strings.ToLower(field), needle)
}
