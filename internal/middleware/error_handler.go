package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/dto"
)

// NewErrorHandler renders every error as {"message": ...}. Errors that are
// not *echo.HTTPError are classified by their apperr kind; server-side
// failures are logged and their details withheld from the client.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		} else {
			code = apperr.HTTPStatus(err)
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", code),
				zap.Error(err))
			if code == http.StatusBadGateway {
				msg = "a backing service is unavailable, please try again"
			} else {
				msg = http.StatusText(code)
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, dto.ErrorResponse{Message: msg})
	}
}
