// Package config assembles the application configuration from defaults,
// environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathgen/internal/imagegen"
	"github.com/abhisek/mathgen/internal/llm"
	"github.com/abhisek/mathgen/internal/render"
)

// ErrMissingAPIKey is returned when a required credential is not set.
var ErrMissingAPIKey = llm.ErrMissingAPIKey

// Config is the full configuration of a generation run.
type Config struct {
	LLM   llm.Config       `yaml:"llm"`
	Image imagegen.Config  `yaml:"image"`
	PDF   render.PDFConfig `yaml:"pdf"`

	// Input is the JSON file of base questions.
	Input string `yaml:"input"`

	// Output is the PDF document path.
	Output string `yaml:"output"`

	// ImagesDir receives question<N>.png files.
	ImagesDir string `yaml:"images_dir"`

	// SkipImages disables the image pipeline and its credential check.
	SkipImages bool `yaml:"skip_images"`

	// Concurrency bounds parallel generation and image fetches. 1 is sequential.
	Concurrency int `yaml:"concurrency"`

	// DB is the run history database. Empty means store.DefaultDBPath.
	DB string `yaml:"db"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM:         llm.DefaultConfig(),
		Image:       imagegen.DefaultConfig(),
		PDF:         render.DefaultPDFConfig(),
		Input:       "data/base_questions.json",
		Output:      "output/generated_questions.pdf",
		ImagesDir:   "images",
		Concurrency: 1,
	}
}

// ApplyEnv overlays environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	llm.ApplyEnv(&cfg.LLM)

	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}
	set(&cfg.Image.APIKey, "MATHGEN_GEMINI_API_KEY", "GEMINI_API_KEY")
	set(&cfg.Image.Model, "MATHGEN_IMAGE_MODEL")
	set(&cfg.Image.Size, "MATHGEN_IMAGE_SIZE")
	set(&cfg.DB, "MATHGEN_DB")
}

// FromEnv returns the defaults overlaid with environment variables.
func FromEnv() Config {
	cfg := Default()
	ApplyEnv(&cfg)
	return cfg
}

// Load builds the configuration: defaults, then environment, then the YAML
// file at path when path is non-empty.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if path == "" {
		return cfg, nil
	}
	if err := LoadFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile decodes the YAML file at path over cfg. Unknown keys and
// multi-document files are rejected. An empty file changes nothing.
func LoadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: expected a single YAML document", path)
	}
	return nil
}

// Validate checks credentials and numeric settings.
func (c Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if !c.SkipImages {
		if c.Image.APIKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY is required for image generation", ErrMissingAPIKey)
		}
		if err := c.Image.Validate(); err != nil {
			return err
		}
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Input == "" {
		return errors.New("input path is required")
	}
	if c.Output == "" {
		return errors.New("output path is required")
	}
	return nil
}
