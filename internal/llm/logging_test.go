package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/abhisek/mathgen/internal/store"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Text: "@question hi", Usage: Usage{InputTokens: 7, OutputTokens: 3}})
	p := WithLogging(mock, "mock", repo)

	ctx := WithRunID(WithPurpose(context.Background(), "question-gen"), "run-42")
	if _, err := p.Generate(ctx, Request{Prompt: "base"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if !e.Success || e.Purpose != "question-gen" || e.RunID != "run-42" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.InputTokens != 7 || e.OutputTokens != 3 {
		t.Fatalf("unexpected token counts: %+v", e)
	}
	if e.Prompt != "base" || e.ResponseText != "@question hi" {
		t.Fatalf("unexpected bodies: %+v", e)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, "mock", repo)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("unexpected events: %+v", repo.events)
	}
}

func TestLogging_RecorderFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", repo)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "ok" {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
}
