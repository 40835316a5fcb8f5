package llm

import (
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrQuotaExceeded indicates the account has exhausted its quota or credit.
type ErrQuotaExceeded struct {
	Err error
}

func (e *ErrQuotaExceeded) Error() string {
	return fmt.Sprintf("LLM quota exceeded: %v", e.Err)
}

func (e *ErrQuotaExceeded) Unwrap() error { return e.Err }

// ErrAuthentication indicates the provider rejected the credential (401/403).
type ErrAuthentication struct {
	Err error
}

func (e *ErrAuthentication) Error() string {
	return fmt.Sprintf("LLM authentication failed: %v", e.Err)
}

func (e *ErrAuthentication) Unwrap() error { return e.Err }

// ErrBadRequest indicates the provider rejected the request as malformed
// (400, 404 unknown model, 422).
type ErrBadRequest struct {
	Err error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("LLM rejected request: %v", e.Err)
}

func (e *ErrBadRequest) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrEmptyResponse indicates the provider answered but produced no text,
// for example when every candidate was blocked.
type ErrEmptyResponse struct {
	Reason string
}

func (e *ErrEmptyResponse) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("LLM returned no text: %s", e.Reason)
	}
	return "LLM returned no text"
}

// mapStatusError converts an HTTP status reported by a provider SDK into the
// matching typed error. quota marks 429s that the provider flagged as
// exhausted quota rather than a transient rate limit.
func mapStatusError(status int, quota bool, err error) error {
	switch {
	case status == http.StatusTooManyRequests && quota:
		return &ErrQuotaExceeded{Err: err}
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status == http.StatusPaymentRequired:
		return &ErrQuotaExceeded{Err: err}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ErrAuthentication{Err: err}
	case status == http.StatusBadRequest || status == http.StatusNotFound || status == http.StatusUnprocessableEntity:
		return &ErrBadRequest{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
