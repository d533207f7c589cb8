package imagegen

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config controls the image generation endpoint and retry budget.
type Config struct {
	// BaseURL is the REST root, without the model path.
	BaseURL string `yaml:"base_url"`

	// Model is the image model ID. A leading "models/" is accepted.
	Model string `yaml:"model"`

	// APIKey is sent as a bearer token.
	APIKey string `yaml:"-"`

	// Size is the target image size as WIDTHxHEIGHT, e.g. "512x512".
	Size string `yaml:"size"`

	// MaxRetries is the total number of attempts per image.
	MaxRetries int `yaml:"max_retries"`

	// Timeout bounds a single attempt.
	Timeout time.Duration `yaml:"timeout"`

	// Backoff is the fixed wait between attempts.
	Backoff time.Duration `yaml:"backoff"`
}

// DefaultConfig returns the endpoint and retry defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://api.generative.googleapis.com/v1beta2",
		Model:      "gemini-1.5-pro",
		Size:       "512x512",
		MaxRetries: 3,
		Timeout:    10 * time.Second,
		Backoff:    2 * time.Second,
	}
}

// Validate checks the size and retry settings.
func (c Config) Validate() error {
	if _, _, err := ParseSize(c.Size); err != nil {
		return err
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("image max_retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("image timeout must be positive, got %s", c.Timeout)
	}
	if c.Backoff < 0 {
		return fmt.Errorf("image backoff must not be negative, got %s", c.Backoff)
	}
	return nil
}

// ParseSize parses "WIDTHxHEIGHT" (case-insensitive x).
func ParseSize(s string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid image size %q: want WIDTHxHEIGHT", s)
	}
	width, err = strconv.Atoi(w)
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid image width in %q", s)
	}
	height, err = strconv.Atoi(h)
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("invalid image height in %q", s)
	}
	return width, height, nil
}

func (c Config) endpoint() string {
	model := strings.TrimPrefix(c.Model, "models/")
	return strings.TrimRight(c.BaseURL, "/") + "/models/" + model + ":generateImage"
}
