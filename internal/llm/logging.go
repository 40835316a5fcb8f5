package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eduai/eduai/internal/config"
	"github.com/eduai/eduai/internal/store"
)

// LoggingProvider is a decorator that records every generation call as an
// event and writes one log line per call.
type LoggingProvider struct {
	inner     Provider
	name      string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging. name is the provider
// family recorded on each event ("gemini", "openai", ...).
func WithLogging(p Provider, name string, repo store.EventRepo) Provider {
	if repo == nil {
		repo = store.NopEventRepo{}
	}
	return &LoggingProvider{inner: p, name: name, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	callID := CallIDFrom(ctx)
	if callID == "" {
		callID = uuid.NewString()
		ctx = WithCallID(ctx, callID)
	}
	purpose := PurposeFrom(ctx)
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.GenerationEventData{
		CallID:      callID,
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = resp.Text
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"call_id":    callID,
		"provider":   data.Provider,
		"model":      data.Model,
		"purpose":    purpose,
		"latency_ms": data.LatencyMs,
	})
	if err != nil {
		log.WithError(err).Warn("generation failed")
	} else {
		log.WithFields(logrus.Fields{
			"input_tokens":  data.InputTokens,
			"output_tokens": data.OutputTokens,
		}).Info("generation completed")
	}

	// Don't fail the request if the audit write fails.
	if logErr := l.eventRepo.AppendGeneration(ctx, data); logErr != nil {
		log.WithError(logErr).Warn("failed to record generation event")
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	b.WriteString("[user]\n")
	b.WriteString(req.Prompt)
	b.WriteString("\n\n")

	if cfg, err := json.Marshal(req.Config); err == nil {
		b.WriteString("[config]\n")
		b.Write(cfg)
		b.WriteString("\n")
	}

	return b.String()
}
