package llm

import (
	"context"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "first", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: "second"},
	)

	resp1, err := mock.Generate(context.Background(), Request{Prompt: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != "first" {
		t.Fatalf("expected 'first', got %q", resp1.Text)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Prompt: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text != "second" {
		t.Fatalf("expected 'second', got %q", resp2.Text)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "x"})
	_, _ = mock.Generate(context.Background(), Request{System: "sys", Prompt: "hello"})

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" || mock.Calls[0].Prompt != "hello" {
		t.Fatalf("unexpected recorded request: %+v", mock.Calls[0])
	}
}

func TestMockResponder(t *testing.T) {
	mock := NewMockResponder(func(req Request) MockResponse {
		if req.Prompt == "fail" {
			return MockResponse{Err: &ErrRateLimit{}}
		}
		return MockResponse{Text: "echo " + req.Prompt}
	})

	resp, err := mock.Generate(context.Background(), Request{Prompt: "hi"})
	if err != nil || resp.Text != "echo hi" {
		t.Fatalf("unexpected response %+v, err %v", resp, err)
	}

	_, err = mock.Generate(context.Background(), Request{Prompt: "fail"})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestContextLabels(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if id := RunIDFrom(ctx); id != "" {
		t.Fatalf("expected empty run id, got %q", id)
	}

	ctx = WithRunID(WithPurpose(ctx, "question-gen"), "run-1")
	if p := PurposeFrom(ctx); p != "question-gen" {
		t.Fatalf("expected 'question-gen', got %q", p)
	}
	if id := RunIDFrom(ctx); id != "run-1" {
		t.Fatalf("expected 'run-1', got %q", id)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "k"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_MissingKeyIsSentinel(t *testing.T) {
	err := Config{Provider: "gemini"}.Validate()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "plain-key")
	t.Setenv("MATHGEN_GEMINI_MODEL", "gemini-2.0-flash")

	cfg := ConfigFromEnv()
	if cfg.Provider != "gemini" {
		t.Fatalf("expected default provider gemini, got %q", cfg.Provider)
	}
	if cfg.Gemini.APIKey != "plain-key" {
		t.Fatalf("expected GEMINI_API_KEY to be picked up, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Fatalf("unexpected model %q", cfg.Gemini.Model)
	}

	t.Setenv("MATHGEN_GEMINI_API_KEY", "prefixed-key")
	if got := ConfigFromEnv().Gemini.APIKey; got != "prefixed-key" {
		t.Fatalf("expected prefixed key to win, got %q", got)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock", Retry: retryConfig()}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: "nope"}, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-1.5-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-1.5-flash")
	}
	if got := c.Cost(1_000_000, 1_000_000); got < 0.374 || got > 0.376 {
		t.Fatalf("unexpected cost %f", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
