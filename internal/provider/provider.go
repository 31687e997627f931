// Package provider holds what the upstream API clients share.
package provider

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks failures to reach or understand an upstream API.
var ErrUnavailable = errors.New("upstream provider unavailable")

// Error describes a failed upstream call.
type Error struct {
	Provider string
	// StatusCode is the HTTP status of the final attempt, or 0 on transport failure.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() []error { return []error{ErrUnavailable, e.Err} }

// NewError wraps err as a failure of the named provider.
func NewError(name string, status int, err error) *Error {
	return &Error{Provider: name, StatusCode: status, Err: err}
}
