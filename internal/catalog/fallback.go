package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

//go:embed fallback.json
var fallbackJSON []byte

var loadFallback = sync.OnceValues(func() ([]models.Package, error) {
	var pkgs []models.Package
	if err := json.Unmarshal(fallbackJSON, &pkgs); err != nil {
		return nil, fmt.Errorf("decode bundled catalog: %w", err)
	}
	for i := range pkgs {
		if err := pkgs[i].Validate(); err != nil {
			return nil, fmt.Errorf("bundled catalog: %w", err)
		}
	}
	return pkgs, nil
})

// Fallback returns the bundled package list used when the database cannot
// serve the catalog.
func Fallback() []models.Package {
	pkgs, err := loadFallback()
	if err != nil {
		panic(err)
	}
	out := make([]models.Package, len(pkgs))
	for i, p := range pkgs {
		p.Includes = slices.Clone(p.Includes)
		out[i] = p
	}
	return out
}

func fallbackByID(id string) (models.Package, bool) {
	for _, p := range Fallback() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Package{}, false
}
