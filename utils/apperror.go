package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError and decides its HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindRateLimited
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindRateLimited:
		return "rate_limited"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// HTTPStatus maps the kind to a response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalid:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the error type returned by services. Message is safe to show to
// clients; Err holds the underlying cause for logs.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches another AppError of the same kind. A target without a message
// matches any error of that kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is checks by kind.
var (
	ErrInvalid      = &AppError{Kind: KindInvalid}
	ErrUnauthorized = &AppError{Kind: KindUnauthorized}
	ErrForbidden    = &AppError{Kind: KindForbidden}
	ErrNotFound     = &AppError{Kind: KindNotFound}
	ErrConflict     = &AppError{Kind: KindConflict}
	ErrUnavailable  = &AppError{Kind: KindUnavailable}
)

func NewError(kind Kind, msg string) *AppError {
	return &AppError{Kind: kind, Message: msg}
}

// Wrap attaches a cause to a new AppError.
func Wrap(kind Kind, msg string, err error) *AppError {
	return &AppError{Kind: kind, Message: msg, Err: err}
}

func Invalid(msg string) *AppError   { return NewError(KindInvalid, msg) }
func Forbidden(msg string) *AppError { return NewError(KindForbidden, msg) }
func NotFound(msg string) *AppError  { return NewError(KindNotFound, msg) }
func Conflict(msg string) *AppError  { return NewError(KindConflict, msg) }

// KindOf extracts the kind of err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// PublicMessage returns the client-facing message for err.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Internal Server Error"
}
