// internal/app/system/apperr/apperr.go
//
// Typed application errors. Stores and handlers return these; the respond
// package maps each kind to an HTTP status exactly once, so handlers never
// hand-roll status codes for routine failures.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	// Internal is the zero kind: anything unclassified is a 500.
	Internal Kind = iota
	// Validation covers schema violations and malformed input (400).
	Validation
	// Unauthorized covers missing/invalid/expired credentials (401).
	Unauthorized
	// Forbidden covers a valid identity with the wrong role (403).
	Forbidden
	// NotFound covers missing jobs, routes, and empty stat groups (404).
	NotFound
	// Geocoding covers an address or zipcode the geocoder could not
	// resolve. Surfaced as 400 on the write path; the radius-search
	// handler rewraps it as NotFound.
	Geocoding
)

// Error carries a kind, a client-visible message, and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with the given kind and client-visible message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with an underlying cause preserved for logging and errors.Is.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err, or Internal when err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// MessageOf returns the client-visible message for err. Unclassified errors
// get a generic message so internals never leak to clients.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}
