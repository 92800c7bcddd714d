package callable

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the error code returned to callable clients.
type Code string

const (
	InvalidArgument    Code = "invalid-argument"
	Unauthenticated    Code = "unauthenticated"
	PermissionDenied   Code = "permission-denied"
	NotFound           Code = "not-found"
	AlreadyExists      Code = "already-exists"
	FailedPrecondition Code = "failed-precondition"
	Internal           Code = "internal"
)

// HTTPStatus maps the code onto the response status.
func (c Code) HTTPStatus() int {
	switch c {
	case InvalidArgument, FailedPrecondition:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case PermissionDenied:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case AlreadyExists:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Error is the {code, message} failure every callable returns.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Errorf builds a callable error.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// wrapInternal hides err behind a generic message but keeps it for logging.
func wrapInternal(msg string, err error) *Error {
	return &Error{Code: Internal, Message: msg, cause: err}
}

// AsError converts any error into a callable error. Unknown errors become
// internal.
func AsError(err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return wrapInternal("internal error", err)
}
