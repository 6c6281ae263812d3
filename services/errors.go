package services

import (
	"errors"
	"net/http"
)

// ErrorKind is the machine-readable error code surfaced to API callers.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindUnauthorized      ErrorKind = "UNAUTHORIZED"
	KindDuplicateBooking  ErrorKind = "DUPLICATE_BOOKING"
	KindRateLimited       ErrorKind = "RATE_LIMITED"
	KindAlreadyRegistered ErrorKind = "ALREADY_REGISTERED"
	KindAlreadyUsed       ErrorKind = "ALREADY_USED"
	KindExpired           ErrorKind = "EXPIRED"
	KindMismatch          ErrorKind = "MISMATCH"
	KindInvalidStatus     ErrorKind = "INVALID_STATUS"
	KindInvalidInput      ErrorKind = "INVALID_INPUT"
	KindInternal          ErrorKind = "INTERNAL"
)

// Error carries an error kind plus a human-readable message. RetryAfter is
// set (in seconds) for RATE_LIMITED only.
type Error struct {
	Kind       ErrorKind
	Message    string
	RetryAfter int
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// HTTPStatus maps the error kind to its response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindDuplicateBooking, KindAlreadyRegistered:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindAlreadyUsed, KindExpired, KindMismatch, KindInvalidStatus, KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func failWith(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// IsKind reports whether err is a service error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var svcErr *Error
	return errors.As(err, &svcErr) && svcErr.Kind == kind
}
