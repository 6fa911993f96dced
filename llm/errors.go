package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when a provider response carries no content
// parts at all. Callers should report it as a degraded result, not a crash.
var ErrEmptyResponse = errors.New("empty response: no content returned")

// ValidationError reports the first violated request invariant.
// Validation happens before dispatch; no network round trip is spent on a
// request that carries one of these.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DispatchError wraps a transport or provider-side failure. The original
// cause is preserved for unwrapping; this layer never retries.
type DispatchError struct {
	Provider string
	Err      error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s dispatch failed: %v", e.Provider, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
