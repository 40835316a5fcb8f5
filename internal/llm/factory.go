package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/eduai/eduai/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with event
// logging. There is no retry layer: each call reaches the backend once.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, cfg.Provider, eventRepo), nil
}

// NewProviderFromEnv builds a Provider from EDUAI_* variables, falling back
// to DiscoverConfig when no provider was chosen and the default one has no
// key.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if os.Getenv("EDUAI_LLM_PROVIDER") == "" && cfg.Validate() != nil {
		if discovered, ok := DiscoverConfig(); ok {
			discovered.Timeout = cfg.Timeout
			cfg = discovered
		}
	}
	return NewProvider(ctx, cfg, eventRepo)
}
