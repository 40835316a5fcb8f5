package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return &GeminiProvider{client: client, model: "gemini-1.5-pro"}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-pro", "gemini-1.5-pro"},
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-2.5-pro", "gemini-2.5-pro"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiConfig(t *testing.T) {
	cfg := buildGeminiConfig(Request{
		System: "You are an expert educational tutor.",
		Prompt: "Explain gravity.",
		Config: DefaultGenerationConfig(),
	})

	if cfg.Temperature == nil || *cfg.Temperature != float32(0.7) {
		t.Errorf("temperature = %v", cfg.Temperature)
	}
	if cfg.TopP == nil || *cfg.TopP != float32(0.95) {
		t.Errorf("top_p = %v", cfg.TopP)
	}
	if cfg.TopK == nil || *cfg.TopK != float32(64) {
		t.Errorf("top_k = %v", cfg.TopK)
	}
	if cfg.MaxOutputTokens != 8192 {
		t.Errorf("max output tokens = %d", cfg.MaxOutputTokens)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "You are an expert educational tutor." {
		t.Errorf("system instruction = %+v", cfg.SystemInstruction)
	}

	if noSys := buildGeminiConfig(Request{Prompt: "x"}); noSys.SystemInstruction != nil {
		t.Error("expected no system instruction when System is empty")
	}
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	var path string
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"role":  "model",
						"parts": []map[string]any{{"text": "Gravity pulls masses together."}},
					},
					"finishReason": "STOP",
				},
			},
			"usageMetadata": map[string]any{
				"promptTokenCount":     12,
				"candidatesTokenCount": 6,
				"totalTokenCount":      18,
			},
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System: "You are an expert educational tutor.",
		Prompt: "Explain gravity.",
		Config: DefaultGenerationConfig(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Gravity pulls masses together." {
		t.Fatalf("text = %q", resp.Text)
	}
	if resp.Usage.TotalTokens != 18 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
	if !strings.Contains(path, "gemini-1.5-pro:generateContent") {
		t.Errorf("path = %q", path)
	}
	if _, ok := body["systemInstruction"]; !ok {
		t.Error("expected systemInstruction in request body")
	}
	if _, ok := body["generationConfig"]; !ok {
		t.Error("expected generationConfig in request body")
	}
}

func TestGeminiProvider_BlockedResponse(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{"finishReason": "SAFETY"}},
		})
	})

	_, err := p.Generate(context.Background(), Request{Prompt: "x", Config: DefaultGenerationConfig()})
	var empty *ErrEmptyResponse
	if !errors.As(err, &empty) {
		t.Fatalf("expected ErrEmptyResponse, got: %T (%v)", err, err)
	}
	if empty.Reason != "safety" {
		t.Errorf("reason = %q, want safety", empty.Reason)
	}
}

func TestGeminiProvider_QuotaError(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    429,
				"message": "You exceeded your current quota.",
				"status":  "RESOURCE_EXHAUSTED",
			},
		})
	})

	_, err := p.Generate(context.Background(), Request{Prompt: "x", Config: DefaultGenerationConfig()})
	var quota *ErrQuotaExceeded
	if !errors.As(err, &quota) {
		t.Fatalf("expected ErrQuotaExceeded, got: %T (%v)", err, err)
	}
}

func TestMapGeminiError_PassesThroughCancellation(t *testing.T) {
	if err := mapGeminiError(context.Canceled); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var unavail *ErrProviderUnavailable
	if err := mapGeminiError(errors.New("dial tcp: refused")); !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), GeminiConfig{Model: "gemini-pro"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
