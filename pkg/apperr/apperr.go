// Package apperr defines the closed error taxonomy used across the
// service layer. Every business failure is one of six kinds; handlers
// translate the kind into an HTTP status through StatusOf.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a business error.
type Kind int

const (
	// KindAuthentication — missing or invalid credential.
	KindAuthentication Kind = iota + 1
	// KindAuthorization — valid identity, insufficient role.
	KindAuthorization
	// KindValidation — malformed or missing required field.
	KindValidation
	// KindNotFound — operating on a non-existent id.
	KindNotFound
	// KindConflict — deleting a referenced entity, or losing a
	// concurrent mutation.
	KindConflict
	// KindInternal — everything the caller cannot fix.
	KindInternal
)

// Error carries a kind and a human-readable reason.
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

// New creates an error of the given kind. The result is suitable as a
// package-level sentinel compared with errors.Is.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain. Unclassified errors
// report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf extracts the human-readable reason from an error chain,
// falling back to a generic message for unclassified errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// StatusOf maps an error to its HTTP status code.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
