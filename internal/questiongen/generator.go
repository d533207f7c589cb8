package questiongen

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathgen/internal/llm"
)

// Purpose labels generation requests in the event log.
const Purpose = "question-gen"

// Generator turns base questions into new tagged question blocks.
type Generator struct {
	provider llm.Provider
	config   Config

	mu  sync.Mutex
	log io.Writer
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	log := cfg.Log
	if log == nil {
		log = os.Stderr
	}
	return &Generator{provider: provider, config: cfg, log: log}
}

// Generate produces one raw tagged block for base.
func (g *Generator) Generate(ctx context.Context, base string) (string, error) {
	ctx = llm.WithPurpose(ctx, Purpose)
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      BuildPrompt(base),
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// BatchGenerate generates one block per base question. The result has the
// same length and order as items; an item whose generation fails is logged
// and left as an empty string.
func (g *Generator) BatchGenerate(ctx context.Context, items []string) []string {
	out := make([]string, len(items))

	if g.config.Concurrency < 2 {
		for i, item := range items {
			out[i] = g.one(ctx, i, item)
		}
		return out
	}

	var eg errgroup.Group
	eg.SetLimit(g.config.Concurrency)
	for i, item := range items {
		eg.Go(func() error {
			out[i] = g.one(ctx, i, item)
			return nil
		})
	}
	_ = eg.Wait()
	return out
}

func (g *Generator) one(ctx context.Context, i int, item string) string {
	raw, err := g.Generate(ctx, item)
	if err != nil {
		g.mu.Lock()
		fmt.Fprintf(g.log, "warning: question %d: %v\n", i+1, err)
		g.mu.Unlock()
		return ""
	}
	return raw
}
