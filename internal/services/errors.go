package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies failures returned by the services
type Kind string

const (
	KindDuplicateEmail    Kind = "DuplicateEmail"
	KindNotFound          Kind = "NotFound"
	KindInvalidCredential Kind = "InvalidCredential"
	KindValidation        Kind = "ValidationError"
	KindInvalidTransition Kind = "InvalidTransition"
	KindPersistence       Kind = "PersistenceError"
	KindForbidden         Kind = "Forbidden"
)

// Error is the single error type crossing the service boundary
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so callers can compare against the
// sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrDuplicateEmail    = &Error{Kind: KindDuplicateEmail}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidCredential = &Error{Kind: KindInvalidCredential}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrPersistence       = &Error{Kind: KindPersistence}
	ErrForbidden         = &Error{Kind: KindForbidden}
)

func newError(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

func validationErr(format string, args ...any) *Error {
	return newError(KindValidation, fmt.Sprintf(format, args...), nil)
}

func notFoundErr(format string, args ...any) *Error {
	return newError(KindNotFound, fmt.Sprintf(format, args...), nil)
}

func forbiddenErr(format string, args ...any) *Error {
	return newError(KindForbidden, fmt.Sprintf(format, args...), nil)
}

func persistenceErr(detail string, err error) *Error {
	return newError(KindPersistence, detail, err)
}

// KindOf returns the kind of err, or "" for errors that did not come from
// this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// DetailOf returns the human-readable detail of err
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Detail != "" {
		return e.Detail
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// StatusCode maps an error kind to the HTTP status the API reports it with
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindDuplicateEmail, KindInvalidTransition:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidCredential:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
