package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/checkout"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/middleware"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

const testUser = "user-1"

var today = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return today }

type registrar interface {
	RegisterRoutes(g *echo.Group)
}

// newTestEcho wires handlers the way main does, with the current user fixed.
func newTestEcho(handlers ...registrar) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorHandler(zap.NewNop())
	e.Validator = middleware.NewRequestValidator(checkout.NewValidator())

	api := e.Group("/api/v1", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			middleware.SetUserID(c, testUser)
			return next(c)
		}
	})
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// --- In-memory cart slots ---

type memSlots struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemSlots() *memSlots {
	return &memSlots{data: make(map[string][]byte)}
}

func (m *memSlots) LoadSlot(ctx context.Context, userID, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[userID+"/"+key], nil
}

func (m *memSlots) SaveSlot(ctx context.Context, userID, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[userID+"/"+key] = payload
	return nil
}

func testPackage(id string, price int64) models.Package {
	return models.Package{ID: id, Title: "Package " + id, Treatment: "Dental", Price: decimal.NewFromInt(price)}
}

