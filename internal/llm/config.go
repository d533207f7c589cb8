package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string `yaml:"provider"`

	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single generation call including retries. Default: 60s.
	Timeout time.Duration `yaml:"timeout"`

	// MaxTokens is the response token budget for one question. Default: 1024.
	MaxTokens int `yaml:"max_tokens"`

	// Temperature for generation (0.0-1.0). Default: 0.7.
	Temperature float64 `yaml:"temperature"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gemini-1.5-flash"
	BaseURL string `yaml:"base_url"` // Optional endpoint override.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "claude-haiku"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "google/gemini-2.0-flash-exp"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-1.5-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout:     60 * time.Second,
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// ApplyEnv overlays environment variables onto cfg. Unset variables leave
// the existing values untouched.
func ApplyEnv(cfg *Config) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}

	set(&cfg.Provider, "MATHGEN_LLM_PROVIDER")

	set(&cfg.Gemini.APIKey, "MATHGEN_GEMINI_API_KEY", "GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "MATHGEN_GEMINI_MODEL")

	set(&cfg.OpenAI.APIKey, "MATHGEN_OPENAI_API_KEY", "OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "MATHGEN_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "MATHGEN_OPENAI_BASE_URL")

	set(&cfg.Anthropic.APIKey, "MATHGEN_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "MATHGEN_ANTHROPIC_MODEL")

	set(&cfg.OpenRouter.APIKey, "MATHGEN_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "MATHGEN_OPENROUTER_MODEL")
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY is required for the gemini provider", ErrMissingAPIKey)
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: MATHGEN_OPENAI_API_KEY is required for the openai provider", ErrMissingAPIKey)
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("%w: MATHGEN_ANTHROPIC_API_KEY is required for the anthropic provider", ErrMissingAPIKey)
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("%w: MATHGEN_OPENROUTER_API_KEY is required for the openrouter provider", ErrMissingAPIKey)
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
