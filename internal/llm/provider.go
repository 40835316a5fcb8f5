package llm

import "context"

// Provider is the core abstraction over a text-generation backend.
// Each Generate call is an independent single-turn exchange: the provider
// must not carry conversation state from one call to the next.
type Provider interface {
	// Generate sends one prompt with its system instruction and returns the
	// complete text produced by the backend.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes a single-turn generation call.
type Request struct {
	// System is the system instruction. Fixes the backend's persona and
	// output contract for the task.
	System string

	// Prompt is the single user turn.
	Prompt string

	// Config carries the sampling parameters. Shared read-only by all calls.
	Config GenerationConfig
}

// Response holds the backend's output.
type Response struct {
	// Text is the raw generated text, exactly as returned by the backend.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "safety"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
