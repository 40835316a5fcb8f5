package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// GenerationEventData captures the data for a single generation call.
type GenerationEventData struct {
	CallID       string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// GenerationEvent is a stored generation call.
type GenerationEvent struct {
	ID        int
	Timestamp time.Time
	GenerationEventData
}

// PurposeUsage aggregates token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo is the append-and-inspect API over generation events.
// Events are an audit trail only; nothing reads them back to answer a
// generation request.
type EventRepo interface {
	// AppendGeneration records a generation call.
	AppendGeneration(ctx context.Context, data GenerationEventData) error

	// QueryGenerations returns events newest first.
	QueryGenerations(ctx context.Context, opts QueryOpts) ([]GenerationEvent, error)

	// GetGeneration returns one event, or nil if the id is unknown.
	GetGeneration(ctx context.Context, id int) (*GenerationEvent, error)

	// UsageByPurpose aggregates usage per purpose, ordered by purpose.
	UsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// UsageByModel aggregates usage per model, ordered by model.
	UsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// NopEventRepo discards appends and reports no events. Used when the event
// log is disabled.
type NopEventRepo struct{}

func (NopEventRepo) AppendGeneration(context.Context, GenerationEventData) error { return nil }

func (NopEventRepo) QueryGenerations(context.Context, QueryOpts) ([]GenerationEvent, error) {
	return nil, nil
}

func (NopEventRepo) GetGeneration(context.Context, int) (*GenerationEvent, error) { return nil, nil }

func (NopEventRepo) UsageByPurpose(context.Context) ([]PurposeUsage, error) { return nil, nil }

func (NopEventRepo) UsageByModel(context.Context) ([]ModelUsage, error) { return nil, nil }
