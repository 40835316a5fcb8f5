// Package generation issues single-turn requests to the configured backend
// and contains every upstream failure.
package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eduai/eduai/internal/config"
	"github.com/eduai/eduai/internal/llm"
)

// Kind classifies an upstream failure.
type Kind string

const (
	KindConnectivity   Kind = "connectivity"
	KindAuthentication Kind = "authentication"
	KindQuota          Kind = "quota"
	KindBadRequest     Kind = "bad_request"
	KindBackend        Kind = "backend"
	KindEmptyOutput    Kind = "empty_output"
	KindCanceled       Kind = "canceled"
)

// Failure describes why a generation call produced no text.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// Outcome is the result of one call: Text on success, Failure otherwise.
type Outcome struct {
	Text    string
	Failure *Failure
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool { return o.Failure == nil }

// Client sends prompts to a Provider under a fixed GenerationConfig.
type Client struct {
	provider llm.Provider
	cfg      llm.GenerationConfig
	timeout  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a Client. cfg is copied and never modified.
func NewClient(provider llm.Provider, cfg llm.GenerationConfig, opts ...Option) *Client {
	c := &Client{provider: provider, cfg: cfg}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Config returns the sampling parameters sent with every call.
func (c *Client) Config() llm.GenerationConfig { return c.cfg }

// Generate sends prompt with the system instruction as a fresh single-turn
// request. It never panics and never returns an error: every fault is
// reported in the Outcome.
func (c *Client) Generate(ctx context.Context, prompt, system string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Failure: &Failure{
				Kind:    KindBackend,
				Message: fmt.Sprintf("generation backend panicked: %v", r),
			}}
			config.WithContext(ctx).WithField("panic", r).Error("generation backend panicked")
		}
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: system,
		Prompt: prompt,
		Config: c.cfg,
	})
	if err != nil {
		return Outcome{Failure: Classify(err)}
	}
	if resp == nil || resp.Text == "" {
		return Outcome{Failure: Classify(&llm.ErrEmptyResponse{})}
	}
	return Outcome{Text: resp.Text}
}

// Classify maps a provider error to a Failure. The message is the error's
// own description.
func Classify(err error) *Failure {
	f := &Failure{Kind: KindBackend, Message: err.Error(), Err: err}

	var (
		rateLimit *llm.ErrRateLimit
		quota     *llm.ErrQuotaExceeded
		auth      *llm.ErrAuthentication
		badReq    *llm.ErrBadRequest
		unavail   *llm.ErrProviderUnavailable
		empty     *llm.ErrEmptyResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		f.Kind = KindCanceled
	case errors.As(err, &rateLimit), errors.As(err, &quota):
		f.Kind = KindQuota
	case errors.As(err, &auth):
		f.Kind = KindAuthentication
	case errors.As(err, &badReq):
		f.Kind = KindBadRequest
	case errors.As(err, &empty):
		f.Kind = KindEmptyOutput
	case errors.As(err, &unavail):
		if unavail.Err == nil || isNetworkError(unavail.Err) {
			f.Kind = KindConnectivity
		}
	}
	return f
}
