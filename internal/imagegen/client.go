package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// maxErrorBody caps how much of a failed response is quoted in errors.
const maxErrorBody = 512

// Result reports the outcome of one Fetch call.
type Result struct {
	Path     string
	Attempts int
	Bytes    int
	// Err is the last attempt's error, nil on success.
	Err error
}

// OK reports whether the image was fetched and written.
func (r Result) OK() bool {
	return r.Err == nil
}

// Client fetches generated images over REST with a fixed-interval retry.
type Client struct {
	cfg    Config
	width  int
	height int
	client *http.Client
	sleep  func(context.Context, time.Duration) error

	mu  sync.Mutex
	log io.Writer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithSleep replaces the wait between attempts. Tests use it to observe
// and skip the backoff.
func WithSleep(fn func(context.Context, time.Duration) error) Option {
	return func(c *Client) { c.sleep = fn }
}

// WithLog sets where attempt diagnostics are written. Default: os.Stderr.
func WithLog(w io.Writer) Option {
	return func(c *Client) { c.log = w }
}

// NewClient creates a Client. cfg must pass Validate.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, h, _ := ParseSize(cfg.Size)

	c := &Client{
		cfg:    cfg,
		width:  w,
		height: h,
		client: &http.Client{},
		sleep:  sleepContext,
		log:    os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch generates one image for prompt and writes it to dest, creating
// parent directories as needed. Every failure is logged and returned in the
// Result; Fetch never panics on bad responses and writes nothing unless an
// attempt succeeds.
func (c *Client) Fetch(ctx context.Context, prompt, dest string) Result {
	res := Result{Path: dest}

	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		res.Attempts = attempt

		data, err := c.fetchOnce(ctx, prompt, attempt)
		if err == nil {
			if werr := writeFile(dest, data); werr != nil {
				res.Err = fmt.Errorf("save %s: %w", dest, werr)
				c.logf("warning: could not save image %s: %v\n", dest, werr)
				return res
			}
			res.Bytes = len(data)
			res.Err = nil
			c.logf("image saved: %s\n", dest)
			return res
		}

		res.Err = err
		c.logf("attempt %d/%d: image generation failed for %s: %v\n",
			attempt, c.cfg.MaxRetries, dest, err)

		if attempt == c.cfg.MaxRetries {
			break
		}
		c.logf("retrying in %s...\n", c.cfg.Backoff)
		if serr := c.sleep(ctx, c.cfg.Backoff); serr != nil {
			res.Err = serr
			c.logf("warning: image %s abandoned: %v\n", dest, serr)
			return res
		}
	}

	c.logf("warning: all %d attempts failed, skipping image %s\n", res.Attempts, dest)
	return res
}

func (c *Client) fetchOnce(ctx context.Context, prompt string, attempt int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Attempt: attempt, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(imageRequest{
		Prompt:         prompt,
		ImageConfig:    imageConfig{Height: c.height, Width: c.width},
		CandidateCount: 1,
	})
	if err != nil {
		return nil, &FetchError{Attempt: attempt, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{Attempt: attempt, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{Attempt: attempt, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Attempt: attempt, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := respBody
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &FetchError{Attempt: attempt, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", bytes.TrimSpace(snippet))}
	}

	data, err := decodeImage(respBody)
	if err != nil {
		return nil, &FetchError{Attempt: attempt, StatusCode: resp.StatusCode, Err: err}
	}
	return data, nil
}

// writeFile writes data to path, removing any partial file on failure.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) logf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.log, format, args...)
}
