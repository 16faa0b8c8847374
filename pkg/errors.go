// Package pkg holds the helpers shared by every layer: domain errors and
// the JSON response envelope.
//
// Errors are plain sentinel values compared with errors.Is:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Services wrap them with a human message, `fmt.Errorf("%w: email already
// registered", pkg.ErrAlreadyExists)`; handlers map them to HTTP status codes.
package pkg

import (
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyExists   = errors.New("already exists")
	ErrBadRequest      = errors.New("bad request")
	ErrInternal        = errors.New("internal error")
	ErrTooManyRequests = errors.New("too many requests")
)

var domainErrors = []error{
	ErrNotFound,
	ErrUnauthorized,
	ErrForbidden,
	ErrAlreadyExists,
	ErrBadRequest,
	ErrTooManyRequests,
}

// PublicMessage returns the part of err that may be shown to a visitor.
//
// For a wrapped domain error "bad request: Email is required" that is
// "Email is required"; a bare domain error yields its own text. Anything
// else (driver errors, ErrInternal, nil) yields "" so the caller falls back
// to a generic message.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, domain := range domainErrors {
		if !errors.Is(err, domain) {
			continue
		}
		msg := err.Error()
		if i := strings.Index(msg, domain.Error()+": "); i >= 0 {
			return msg[i+len(domain.Error())+2:]
		}
		return msg
	}
	return ""
}
