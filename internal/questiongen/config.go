package questiongen

import (
	"io"
	"os"
	"time"
)

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for one generated question.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Concurrency bounds how many base questions are generated at once.
	// Values below 2 generate strictly in order, one at a time.
	Concurrency int

	// Timeout bounds one item, retries included. Zero means no limit.
	Timeout time.Duration

	// Log receives per-item failure lines. Defaults to os.Stderr.
	Log io.Writer
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
		Concurrency: 1,
		Timeout:     60 * time.Second,
		Log:         os.Stderr,
	}
}
