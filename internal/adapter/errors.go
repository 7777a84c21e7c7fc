package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrTransport wraps failures that happened before a response arrived.
	ErrTransport = errors.New("transport failure")
	// ErrEmptyToken is returned when the auth endpoint answered without a token.
	ErrEmptyToken  = errors.New("auth response carries no token")
	ErrInvalidBody = errors.New("invalid response body")
)
