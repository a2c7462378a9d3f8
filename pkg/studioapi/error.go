package studioapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a Studio backend API error.
type Error struct {
	// Detail is the backend's error message.
	Detail string `json:"detail"`

	// HTTPStatus is the HTTP status code.
	HTTPStatus int `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("studioapi: %s (http=%d)", e.Detail, e.HTTPStatus)
}

// IsNotFound returns true if the requested resource does not exist.
func (e *Error) IsNotFound() bool {
	return e.HTTPStatus == http.StatusNotFound
}

// IsInvalidRequest returns true if the backend rejected the request.
func (e *Error) IsInvalidRequest() bool {
	return e.HTTPStatus >= 400 && e.HTTPStatus < 500 && e.HTTPStatus != http.StatusNotFound
}

// IsServerError returns true if the backend itself failed.
func (e *Error) IsServerError() bool {
	return e.HTTPStatus >= 500
}

// AsError extracts *Error from an error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
