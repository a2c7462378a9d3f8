package vapi

import (
	"errors"
	"fmt"
)

// ErrMissingPublicKey is returned by Start when no public key is
// configured. This is a configuration problem, not a connection failure:
// no network activity has taken place.
var ErrMissingPublicKey = errors.New("vapi: public key is not configured")

// Error represents an API error from the Vapi transport.
type Error struct {
	// Code is the error code (e.g., "connection_failed").
	Code string `json:"code,omitzero"`

	// Message is the human-readable error message.
	Message string `json:"message,omitzero"`

	// HTTPStatus is the HTTP status code, if applicable.
	HTTPStatus int `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("vapi: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("vapi: %s", e.Message)
}

// MessageError contains fault details from error messages.
type MessageError struct {
	Code    string `json:"code,omitzero"`
	Message string `json:"message,omitzero"`
}

// ToError converts MessageError to Error. A nil receiver yields a
// generic transport fault, since some error messages omit details.
func (e *MessageError) ToError() *Error {
	if e == nil {
		return &Error{Message: "unspecified transport fault"}
	}
	return &Error{Code: e.Code, Message: e.Message}
}
