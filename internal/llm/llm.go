package llm

import (
	"context"
	"errors"
)

// Client abstracts the external language-model service. A Client sends one
// prompt and returns the raw text output; it never retries on its own.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Failure sentinels for the model boundary. Callers decide whether to
// surface the failure or let the user re-trigger the action.
var (
	// ErrAuth indicates an invalid or rejected credential.
	ErrAuth = errors.New("llm auth failed")
	// ErrQuota indicates the provider's rate or quota limit was hit.
	ErrQuota = errors.New("llm quota exceeded")
	// ErrNetwork indicates a timeout or connectivity failure.
	ErrNetwork = errors.New("llm network failure")
	// ErrUpstream indicates a non-2xx or malformed provider response.
	ErrUpstream = errors.New("llm upstream failure")
)

// ClassifyStatus maps an HTTP status from a provider onto a sentinel.
func ClassifyStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrAuth
	case status == 429:
		return ErrQuota
	default:
		return ErrUpstream
	}
}
