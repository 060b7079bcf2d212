package api

import (
	"fmt"
)

// ErrAuthRequired indicates an operation needs a credential that the
// session does not hold. Detected locally; no request is issued.
type ErrAuthRequired struct {
	Op string
}

func (e *ErrAuthRequired) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("authentication required: %s", e.Op)
	}
	return "authentication required"
}

// ErrUnauthorized indicates the server rejected the credential.
type ErrUnauthorized struct {
	Detail string
}

func (e *ErrUnauthorized) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("unauthorized: %s", e.Detail)
	}
	return "unauthorized"
}

// ErrNotFound indicates the requested object does not exist.
type ErrNotFound struct {
	Detail string
}

func (e *ErrNotFound) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("not found: %s", e.Detail)
	}
	return "not found"
}

// ErrValidation indicates a missing or malformed field, caught either
// locally before dispatch or via the server's detail message.
type ErrValidation struct {
	Detail string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Detail)
}

// ErrTransport indicates a network or connection level failure; the
// request may never have reached the server.
type ErrTransport struct {
	Err error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// ErrMalformedResponse indicates the server returned a success status
// with a body that could not be decoded.
type ErrMalformedResponse struct {
	Body []byte
	Err  error
}

func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *ErrMalformedResponse) Unwrap() error { return e.Err }

// APIError is any other non-success response. Detail carries the
// server-declared message, or the verbatim body when none was present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Detail)
}
