// Package apperr classifies storefront errors into the kinds the HTTP layer
// knows how to render.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrRemote     = errors.New("remote call failed")
)

// Error is a message tagged with one of the kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Validation(msg string) *Error { return &Error{Kind: ErrValidation, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: ErrConflict, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: ErrNotFound, Message: msg} }

func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// Remote wraps a failure of an external collaborator, keeping the cause.
func Remote(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrRemote, err)
}

// HTTPStatus maps an error kind to a response code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRemote):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
