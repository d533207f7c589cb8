package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int    // max results (0 = unlimited)
	RunID string // restrict to one run ("" = all runs)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	RunID        string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	Prompt       string
	ResponseText string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// ImageEventData captures the outcome of one image fetch.
type ImageEventData struct {
	RunID        string
	Position     int
	Prompt       string
	Path         string
	Attempts     int
	Success      bool
	Bytes        int
	ErrorMessage string
}

// ImageEvent is a stored ImageEventData.
type ImageEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ImageEventData
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// PurposeUsage aggregates token usage and latency for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to recorded events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendImageResult records the outcome of one image fetch.
	AppendImageResult(ctx context.Context, data ImageEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// QueryImageEvents returns image events in position order.
	QueryImageEvents(ctx context.Context, opts QueryOpts) ([]ImageEvent, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
}

// Run status values.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// RunInput describes a generation run when it starts.
type RunInput struct {
	InputPath  string
	OutputPath string
	Provider   string
	Model      string
	Items      int
}

// RunSummary is recorded when a run finishes.
type RunSummary struct {
	Status           string
	Generated        int
	GenerationFailed int
	ImagesSucceeded  int
	ImagesFailed     int
	ImagesSkipped    int
}

// Run is one invocation of the generation pipeline.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time // zero while running
	RunInput
	RunSummary
}

// RunRepo manages generation run records.
type RunRepo interface {
	// StartRun stores a new run in the running state and returns it.
	StartRun(ctx context.Context, input RunInput) (*Run, error)

	// FinishRun records the summary of a run.
	FinishRun(ctx context.Context, id string, summary RunSummary) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// GetRun returns a run by ID, or nil if it does not exist.
	GetRun(ctx context.Context, id string) (*Run, error)
}
