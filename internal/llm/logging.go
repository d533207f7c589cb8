package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/mathgen/internal/store"
)

// EventRecorder persists LLM request events. *store.Store's event repo
// satisfies it.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner    Provider
	provider string
	recorder EventRecorder
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, providerName string, rec EventRecorder) Provider {
	return &LoggingProvider{inner: p, provider: providerName, recorder: rec}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		RunID:     RunIDFrom(ctx),
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		Prompt:    req.Prompt,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseText = resp.Text
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A logging failure never fails the request.
	if logErr := l.recorder.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
