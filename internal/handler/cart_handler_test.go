package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/cart"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/catalog"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

type cartFixture struct {
	registry *cart.Registry
	handler  *CartHandler
}

func newCartFixture() *cartFixture {
	registry := cart.NewRegistry(newMemSlots(), cart.WithClock(fixedClock))
	lookup := &mockCatalog{getFn: func(ctx context.Context, id string) (*models.Package, error) {
		switch id {
		case "1":
			p := testPackage("1", 3200)
			return &p, nil
		case "2":
			p := testPackage("2", 12500)
			return &p, nil
		}
		return nil, catalog.ErrPackageNotFound
	}}
	return &cartFixture{registry: registry, handler: NewCartHandler(registry, lookup)}
}

func (f *cartFixture) store(t *testing.T) *cart.Store {
	t.Helper()
	s, err := f.registry.Store(context.Background(), testUser)
	require.NoError(t, err)
	return s
}

func TestCart_AddItem(t *testing.T) {
	f := newCartFixture()
	e := newTestEcho(f.handler)

	rec := do(e, http.MethodPost, "/api/v1/cart/items", `{"package_id":"1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(e, http.MethodPost, "/api/v1/cart/items", `{"package_id":"2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode[dto.CartResponse](t, rec)
	assert.Equal(t, 2, resp.Count)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(15700)))
	assert.Equal(t, "1", resp.Entries[0].ID)
	assert.Nil(t, resp.Entries[0].TravelDate)
}

func TestCart_AddItem_Errors(t *testing.T) {
	f := newCartFixture()
	e := newTestEcho(f.handler)
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/v1/cart/items", `{"package_id":"1"}`).Code)

	assert.Equal(t, http.StatusConflict, do(e, http.MethodPost, "/api/v1/cart/items", `{"package_id":"1"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodPost, "/api/v1/cart/items", `{"package_id":"99"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPost, "/api/v1/cart/items", `{}`).Code)
	assert.Equal(t, 1, f.store(t).Len())
}

func TestCart_RemoveItem(t *testing.T) {
	f := newCartFixture()
	e := newTestEcho(f.handler)
	require.NoError(t, f.store(t).Add(context.Background(), testPackage("1", 3200)))

	rec := do(e, http.MethodDelete, "/api/v1/cart/items/absent", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[dto.CartResponse](t, rec).Count)

	rec = do(e, http.MethodDelete, "/api/v1/cart/items/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[dto.CartResponse](t, rec).Count)
}

func TestCart_SetTravelDate(t *testing.T) {
	f := newCartFixture()
	e := newTestEcho(f.handler)
	require.NoError(t, f.store(t).Add(context.Background(), testPackage("1", 3200)))

	rec := do(e, http.MethodPut, "/api/v1/cart/items/1/travel-date", `{"travel_date":"2026-11-02"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[dto.CartResponse](t, rec)
	require.NotNil(t, resp.Entries[0].TravelDate)
	assert.True(t, resp.Entries[0].TravelDate.Equal(time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPut, "/api/v1/cart/items/1/travel-date", `{"travel_date":"2026-10-17"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPut, "/api/v1/cart/items/1/travel-date", `{"travel_date":"02/11/2026"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodPut, "/api/v1/cart/items/9/travel-date", `{"travel_date":"2026-11-02"}`).Code)
}

func TestCart_Badge(t *testing.T) {
	f := newCartFixture()
	e := newTestEcho(f.handler)
	require.NoError(t, f.store(t).Add(context.Background(), testPackage("1", 3200)))

	rec := do(e, http.MethodGet, "/api/v1/cart/badge", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[dto.BadgeResponse](t, rec).Count)
}

func readCount(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if data, ok := strings.CutPrefix(strings.TrimSpace(line), "data: "); ok {
			return data
		}
	}
}

func TestCart_StreamBadge(t *testing.T) {
	f := newCartFixture()
	srv := httptest.NewServer(newTestEcho(f.handler))
	defer srv.Close()
	store := f.store(t)
	require.NoError(t, store.Add(context.Background(), testPackage("1", 3200)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/cart/badge/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	events := bufio.NewReader(resp.Body)
	assert.Equal(t, "1", readCount(t, events))

	require.NoError(t, store.Add(context.Background(), testPackage("2", 12500)))
	assert.Equal(t, "2", readCount(t, events))

	require.NoError(t, store.Clear(context.Background()))
	assert.Equal(t, "0", readCount(t, events))

	cancel()
	assert.Eventually(t, func() bool { return store.Listeners() == 0 }, 2*time.Second, 10*time.Millisecond)
}
