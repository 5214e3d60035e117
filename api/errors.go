package api

import (
	"errors"
	"fmt"
)

// Error is returned for every failed call to the rental API.
type Error struct {
	// Op names the failed operation, e.g. "list cars".
	Op string
	// Status is the HTTP status, zero when the request never got a response.
	Status int
	// Message is the server's message, or a generic fallback.
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Transport reports whether the request failed before a response arrived.
func (e *Error) Transport() bool {
	return e.Status == 0
}

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
