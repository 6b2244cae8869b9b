package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/catalog"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

// PackageCatalog is the read side of the package catalog.
type PackageCatalog interface {
	Search(ctx context.Context, f catalog.Filter) (catalog.Listing, error)
	Get(ctx context.Context, id string) (*models.Package, error)
}

type CatalogHandler struct {
	catalog PackageCatalog
}

func NewCatalogHandler(c PackageCatalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

func (h *CatalogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/packages", h.ListPackages)
	g.GET("/packages/:id", h.GetPackage)
}

func (h *CatalogHandler) ListPackages(c echo.Context) error {
	var q dto.PackageQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	f := catalog.Filter{Treatment: q.Treatment, Location: q.Location, Search: q.Search}
	var err error
	if f.MinPrice, err = parsePrice(q.MinPrice); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid min_price")
	}
	if f.MaxPrice, err = parsePrice(q.MaxPrice); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid max_price")
	}

	listing, err := h.catalog.Search(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.PackageListResponse{Packages: listing.Packages, Fallback: listing.Fallback})
}

func (h *CatalogHandler) GetPackage(c echo.Context) error {
	pkg, err := h.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pkg)
}

func parsePrice(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
