package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "mathgen.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got), tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestSequenceIsSharedAcrossEventTypes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{RunID: "r", Success: true}))
	require.NoError(t, repo.AppendImageResult(ctx, ImageEventData{RunID: "r", Position: 1, Success: true}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{RunID: "r", Success: false}))

	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{RunID: "r"})
	require.NoError(t, err)
	require.Len(t, llmEvents, 2)
	images, err := repo.QueryImageEvents(ctx, QueryOpts{RunID: "r"})
	require.NoError(t, err)
	require.Len(t, images, 1)

	// Newest first for LLM events.
	assert.Equal(t, int64(3), llmEvents[0].Sequence)
	assert.Equal(t, int64(1), llmEvents[1].Sequence)
	assert.Equal(t, int64(2), images[0].Sequence)
}

func TestLLMEvents_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	in := LLMRequestEventData{
		RunID:        "run-1",
		Provider:     "gemini",
		Model:        "gemini-1.5-flash",
		Purpose:      "question-gen",
		InputTokens:  120,
		OutputTokens: 80,
		LatencyMs:    950,
		Success:      true,
		Prompt:       "base question",
		ResponseText: "@question new",
	}
	require.NoError(t, repo.AppendLLMRequest(ctx, in))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, in, events[0].LLMRequestEventData)
	assert.False(t, events[0].Timestamp.IsZero())

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in, got.LLMRequestEventData)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQueryLLMEvents_FilterAndLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, run := range []string{"a", "a", "b", "a"} {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{RunID: run, Success: true}))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	onlyA, err := repo.QueryLLMEvents(ctx, QueryOpts{RunID: "a"})
	require.NoError(t, err)
	assert.Len(t, onlyA, 3)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{RunID: "a", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Model: "gemini-1.5-flash", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 100, Success: true},
		{Model: "gemini-1.5-flash", Purpose: "question-gen", InputTokens: 200, OutputTokens: 70, LatencyMs: 300, Success: true},
		{Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 10, OutputTokens: 5, LatencyMs: 200, Success: false},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ModelUsage{
		{Model: "gemini-1.5-flash", Calls: 2, InputTokens: 300, OutputTokens: 120},
		{Model: "gpt-4o-mini", Calls: 1, InputTokens: 10, OutputTokens: 5},
	}, byModel)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	assert.Equal(t, []PurposeUsage{
		{Purpose: "question-gen", Calls: 3, InputTokens: 310, OutputTokens: 125, AvgLatencyMs: 200},
	}, byPurpose)
}

func TestImageEvents_OrderedByPosition(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, pos := range []int{3, 1, 2} {
		require.NoError(t, repo.AppendImageResult(ctx, ImageEventData{
			RunID:    "run",
			Position: pos,
			Prompt:   "p",
			Path:     "images/q.png",
			Attempts: pos,
			Success:  pos != 2,
		}))
	}

	events, err := repo.QueryImageEvents(ctx, QueryOpts{RunID: "run"})
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, i+1, e.Position)
	}
	assert.False(t, events[1].Success)
	assert.Equal(t, 3, events[2].Attempts)
}

func TestRuns_Lifecycle(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	run, err := repo.StartRun(ctx, RunInput{
		InputPath:  "data/base_questions.json",
		OutputPath: "output/generated_questions.pdf",
		Provider:   "gemini",
		Model:      "gemini-1.5-flash",
		Items:      4,
	})
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, RunStatusRunning, run.Status)

	got, err := repo.GetRun(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, run.StartedAt, got.StartedAt)
	assert.True(t, got.FinishedAt.IsZero())
	assert.Equal(t, 4, got.Items)

	summary := RunSummary{
		Status:           RunStatusCompleted,
		Generated:        3,
		GenerationFailed: 1,
		ImagesSucceeded:  2,
		ImagesFailed:     1,
		ImagesSkipped:    1,
	}
	require.NoError(t, repo.FinishRun(ctx, run.ID, summary))

	got, err = repo.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, summary, got.RunSummary)
	assert.False(t, got.FinishedAt.IsZero())
}

func TestRuns_ListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		run, err := repo.StartRun(ctx, RunInput{Items: i})
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	runs, err := repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
}

func TestRuns_Missing(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	got, err := repo.GetRun(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Error(t, repo.FinishRun(ctx, "nope", RunSummary{Status: RunStatusFailed}))
}

func TestEnsureDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "mathgen.db")
	require.NoError(t, EnsureDir(p))
	assert.DirExists(t, filepath.Dir(p))
}
