package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// RequireUser resolves the current user from an HS256 bearer token whose
// subject is the user id. The token may also arrive as the access_token query
// parameter, which is all an EventSource client can send. Requests without a
// valid token get 401 with a Location header pointing at the sign-in page.
func RequireUser(secret []byte, signInPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := userFromRequest(c.Request(), secret)
			if err != nil {
				loc := signInPath + "?redirect=" + url.QueryEscape(c.Request().URL.Path)
				c.Response().Header().Set(echo.HeaderLocation, loc)
				return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the id set by RequireUser, or "" outside it.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// SetUserID is used by tests that bypass token parsing.
func SetUserID(c echo.Context, id string) {
	c.Set(userIDKey, id)
}

func userFromRequest(r *http.Request, secret []byte) (string, error) {
	raw := r.URL.Query().Get("access_token")
	if h := r.Header.Get(echo.HeaderAuthorization); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return "", errors.New("malformed authorization header")
		}
		raw = token
	}
	if raw == "" {
		return "", errors.New("missing token")
	}

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// IssueToken signs a token for userID. Sign-in lives in the auth provider;
// this exists for tooling and tests.
func IssueToken(secret []byte, userID string, expiresAt int64) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Subject:   userID,
		ExpiresAt: expiresAt,
	}).SignedString(secret)
}
