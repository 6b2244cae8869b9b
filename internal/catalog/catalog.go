// Package catalog serves the read-only list of treatment packages, falling
// back to a bundled list whenever the database is unavailable.
package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

var ErrPackageNotFound = apperr.NotFound("package not found")

type PackageReader interface {
	FindAll(ctx context.Context) ([]models.Package, error)
	FindByID(ctx context.Context, id string) (*models.Package, error)
}

// Listing is a catalog read. Fallback is set when the bundled list was served.
type Listing struct {
	Packages []models.Package
	Fallback bool
}

type Catalog struct {
	repo PackageReader
	log  *zap.Logger
}

func New(repo PackageReader, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{repo: repo, log: log}
}

func (c *Catalog) List(ctx context.Context) Listing {
	pkgs, err := c.repo.FindAll(ctx)
	if err != nil {
		c.log.Warn("catalog read failed, serving bundled packages", zap.Error(err))
		return Listing{Packages: Fallback(), Fallback: true}
	}
	if len(pkgs) == 0 {
		return Listing{Packages: Fallback(), Fallback: true}
	}
	return Listing{Packages: pkgs}
}

func (c *Catalog) Get(ctx context.Context, id string) (*models.Package, error) {
	if id == "" {
		return nil, ErrPackageNotFound
	}

	p, err := c.repo.FindByID(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.log.Warn("package read failed, trying bundled packages", zap.String("package_id", id), zap.Error(err))
	}

	if fp, ok := fallbackByID(id); ok {
		return &fp, nil
	}
	return nil, ErrPackageNotFound
}

func (c *Catalog) Search(ctx context.Context, f Filter) (Listing, error) {
	if err := f.Validate(); err != nil {
		return Listing{}, err
	}
	listing := c.List(ctx)
	listing.Packages = f.Apply(listing.Packages)
	return listing, nil
}
