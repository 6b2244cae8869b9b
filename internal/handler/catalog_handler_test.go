package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/catalog"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

// --- Mock PackageCatalog ---

type mockCatalog struct {
	searchFn func(ctx context.Context, f catalog.Filter) (catalog.Listing, error)
	getFn    func(ctx context.Context, id string) (*models.Package, error)
}

func (m *mockCatalog) Search(ctx context.Context, f catalog.Filter) (catalog.Listing, error) {
	return m.searchFn(ctx, f)
}

func (m *mockCatalog) Get(ctx context.Context, id string) (*models.Package, error) {
	return m.getFn(ctx, id)
}

// --- Tests ---

func TestListPackages_PassesFilter(t *testing.T) {
	var got catalog.Filter
	svc := &mockCatalog{searchFn: func(ctx context.Context, f catalog.Filter) (catalog.Listing, error) {
		got = f
		return catalog.Listing{Packages: []models.Package{testPackage("1", 3200)}, Fallback: true}, nil
	}}
	e := newTestEcho(NewCatalogHandler(svc))

	rec := do(e, http.MethodGet, "/api/v1/packages?treatment=Dental&location=Thailand&q=implant&min_price=1000&max_price=5000", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Dental", got.Treatment)
	assert.Equal(t, "Thailand", got.Location)
	assert.Equal(t, "implant", got.Search)
	require.NotNil(t, got.MinPrice)
	assert.True(t, got.MinPrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, got.MaxPrice.Equal(decimal.NewFromInt(5000)))

	resp := decode[dto.PackageListResponse](t, rec)
	assert.True(t, resp.Fallback)
	assert.Len(t, resp.Packages, 1)
}

func TestListPackages_InvalidPrice(t *testing.T) {
	e := newTestEcho(NewCatalogHandler(&mockCatalog{}))

	rec := do(e, http.MethodGet, "/api/v1/packages?min_price=cheap", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPackages_RealCatalogFallback(t *testing.T) {
	repo := &stubPackageReader{}
	e := newTestEcho(NewCatalogHandler(catalog.New(repo, nil)))

	rec := do(e, http.MethodGet, "/api/v1/packages?treatment=dental", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[dto.PackageListResponse](t, rec)
	assert.True(t, resp.Fallback)
	require.Len(t, resp.Packages, 1)
	assert.Equal(t, "1", resp.Packages[0].ID)
}

func TestGetPackage_NotFound(t *testing.T) {
	e := newTestEcho(NewCatalogHandler(catalog.New(&stubPackageReader{}, nil)))

	rec := do(e, http.MethodGet, "/api/v1/packages/404", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// stubPackageReader is an empty package table.
type stubPackageReader struct{}

func (stubPackageReader) FindAll(ctx context.Context) ([]models.Package, error) { return nil, nil }

func (stubPackageReader) FindByID(ctx context.Context, id string) (*models.Package, error) {
	return nil, catalog.ErrPackageNotFound
}
