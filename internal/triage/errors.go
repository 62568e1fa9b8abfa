package triage

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when endpoint, key or deployment is missing.
// Callers fall back to FallbackText.
var ErrNotConfigured = errors.New("triage: LLM provider is not configured")

// ProviderError wraps any failure raised while talking to the LLM provider.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("triage: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
