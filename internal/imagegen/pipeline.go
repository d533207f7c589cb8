package imagegen

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/mathgen/internal/store"
	"github.com/abhisek/mathgen/internal/tagged"
)

// Fetcher fetches one image and writes it to dest.
type Fetcher interface {
	Fetch(ctx context.Context, prompt, dest string) Result
}

// ImageRecorder persists image outcomes. store.EventRepo satisfies it.
type ImageRecorder interface {
	AppendImageResult(ctx context.Context, data store.ImageEventData) error
}

// Outcome is the per-block result of a pipeline run.
type Outcome struct {
	Position int
	Name     string
	// Skipped is true when the block carried no @image prompt.
	Skipped bool
	Result  Result
}

// Summary counts the outcomes of a pipeline run. Outcomes are in input order.
type Summary struct {
	Succeeded int
	Failed    int
	Skipped   int
	Outcomes  []Outcome
}

// Paths returns the written image path per position, empty where no image
// exists. The slice is indexed by position-1.
func (s Summary) Paths() []string {
	out := make([]string, len(s.Outcomes))
	for i, o := range s.Outcomes {
		if !o.Skipped && o.Result.OK() {
			out[i] = o.Result.Path
		}
	}
	return out
}

func (s Summary) String() string {
	return fmt.Sprintf("images: %d succeeded, %d failed, %d skipped", s.Succeeded, s.Failed, s.Skipped)
}

// Pipeline fetches the images requested by a batch of question blocks.
type Pipeline struct {
	fetcher     Fetcher
	dir         string
	concurrency int
	recorder    ImageRecorder
	runID       string

	mu  sync.Mutex
	log io.Writer
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithConcurrency bounds the number of images fetched at once. Values below
// 2 fetch sequentially.
func WithConcurrency(n int) PipelineOption {
	return func(p *Pipeline) { p.concurrency = n }
}

// WithRecorder records each outcome under runID.
func WithRecorder(rec ImageRecorder, runID string) PipelineOption {
	return func(p *Pipeline) {
		p.recorder = rec
		p.runID = runID
	}
}

// WithPipelineLog sets where progress lines are written. Default: os.Stderr.
func WithPipelineLog(w io.Writer) PipelineOption {
	return func(p *Pipeline) { p.log = w }
}

// NewPipeline creates a Pipeline writing images to dir/<name>.png.
func NewPipeline(f Fetcher, dir string, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		fetcher:     f,
		dir:         dir,
		concurrency: 1,
		log:         os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Path returns the destination file for a request.
func (p *Pipeline) Path(req tagged.ImageRequest) string {
	return filepath.Join(p.dir, req.Name+".png")
}

// Run fetches every wanted image. Failures are counted, never returned;
// the batch always runs to completion unless ctx is cancelled, in which case
// the remaining fetches fail fast.
func (p *Pipeline) Run(ctx context.Context, reqs []tagged.ImageRequest) Summary {
	outcomes := make([]Outcome, len(reqs))

	if p.concurrency < 2 {
		for i, req := range reqs {
			outcomes[i] = p.one(ctx, req)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(p.concurrency)
		for i, req := range reqs {
			g.Go(func() error {
				outcomes[i] = p.one(ctx, req)
				return nil
			})
		}
		_ = g.Wait()
	}

	sum := Summary{Outcomes: outcomes}
	for _, o := range outcomes {
		switch {
		case o.Skipped:
			sum.Skipped++
		case o.Result.OK():
			sum.Succeeded++
		default:
			sum.Failed++
		}
	}
	p.logf("%s\n", sum)
	return sum
}

func (p *Pipeline) one(ctx context.Context, req tagged.ImageRequest) Outcome {
	out := Outcome{Position: req.Position, Name: req.Name}
	if !req.Wanted() {
		out.Skipped = true
		p.logf("No image required for Question %d\n", req.Position)
		return out
	}

	p.logf("Generating image for Question %d with prompt: %s\n", req.Position, req.Prompt)
	out.Result = p.fetcher.Fetch(ctx, req.Prompt, p.Path(req))
	p.record(ctx, req, out.Result)
	return out
}

func (p *Pipeline) record(ctx context.Context, req tagged.ImageRequest, res Result) {
	if p.recorder == nil {
		return
	}
	data := store.ImageEventData{
		RunID:    p.runID,
		Position: req.Position,
		Prompt:   req.Prompt,
		Attempts: res.Attempts,
		Success:  res.OK(),
		Bytes:    res.Bytes,
	}
	if res.OK() {
		data.Path = res.Path
	} else if res.Err != nil {
		data.ErrorMessage = res.Err.Error()
	}
	if err := p.recorder.AppendImageResult(context.WithoutCancel(ctx), data); err != nil {
		p.logf("warning: failed to record image event: %v\n", err)
	}
}

func (p *Pipeline) logf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.log, format, args...)
}
