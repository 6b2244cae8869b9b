package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/checkout"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/dto"
)

var secret = []byte("test-secret")

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"http error", echo.NewHTTPError(http.StatusBadRequest, "invalid id"), http.StatusBadRequest, "invalid id"},
		{"validation", apperr.Validation("bad date"), http.StatusBadRequest, "bad date"},
		{"conflict", apperr.Conflict("package already in cart"), http.StatusConflict, "package already in cart"},
		{"not found", apperr.NotFound("booking not found"), http.StatusNotFound, "booking not found"},
		{"remote", apperr.Remote("insert bookings", errors.New("dial tcp: refused")), http.StatusBadGateway, "a backing service is unavailable, please try again"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewErrorHandler(zap.NewNop())(tc.err, c)

			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.message, decodeMessage(t, rec))
		})
	}
}

func protected(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewErrorHandler(zap.NewNop())
	e.GET("/api/v1/cart", func(c echo.Context) error {
		return c.String(http.StatusOK, UserID(c))
	}, RequireUser(secret, "/signin"))
	return e
}

func TestRequireUser_ValidBearer(t *testing.T) {
	token, err := IssueToken(secret, "user-1", time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestRequireUser_QueryToken(t *testing.T) {
	token, err := IssueToken(secret, "user-2", time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart?access_token="+token, nil)
	rec := httptest.NewRecorder()
	protected(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-2", rec.Body.String())
}

func TestRequireUser_RedirectsToSignIn(t *testing.T) {
	expired, err := IssueToken(secret, "user-1", time.Now().Add(-time.Hour).Unix())
	require.NoError(t, err)
	foreign, err := IssueToken([]byte("other-secret"), "user-1", time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)
	anonymous, err := IssueToken(secret, "", time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"not bearer":   "Basic dXNlcjpwYXNz",
		"expired":      "Bearer " + expired,
		"wrong secret": "Bearer " + foreign,
		"no subject":   "Bearer " + anonymous,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
			if header != "" {
				req.Header.Set(echo.HeaderAuthorization, header)
			}
			rec := httptest.NewRecorder()
			protected(t).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "/signin?redirect=%2Fapi%2Fv1%2Fcart", rec.Header().Get(echo.HeaderLocation))
		})
	}
}

func TestRequestValidator(t *testing.T) {
	rv := NewRequestValidator(checkout.NewValidator())

	err := rv.Validate(&checkout.PaymentDetails{CardNumber: "4242"})

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "card_name, cvv, expiry")
	assert.NoError(t, rv.Validate(&checkout.PaymentDetails{CardNumber: "1", CardName: "A", Expiry: "1", CVV: "1"}))
}
