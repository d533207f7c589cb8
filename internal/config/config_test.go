package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "MATHGEN_GEMINI_API_KEY", "MATHGEN_GEMINI_MODEL",
		"MATHGEN_LLM_PROVIDER", "MATHGEN_OPENAI_API_KEY", "OPENAI_API_KEY",
		"MATHGEN_IMAGE_MODEL", "MATHGEN_IMAGE_SIZE", "MATHGEN_DB",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mathgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Gemini.Model)
	assert.Equal(t, "gemini-1.5-pro", cfg.Image.Model)
	assert.Equal(t, "512x512", cfg.Image.Size)
	assert.Equal(t, 3, cfg.Image.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.Image.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Image.Backoff)
	assert.Equal(t, "data/base_questions.json", cfg.Input)
	assert.Equal(t, "output/generated_questions.pdf", cfg.Output)
	assert.Equal(t, "images", cfg.ImagesDir)
	assert.Equal(t, 1, cfg.Concurrency)
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("MATHGEN_IMAGE_SIZE", "256x256")
	t.Setenv("MATHGEN_IMAGE_MODEL", "imagen-test")
	t.Setenv("MATHGEN_DB", "/tmp/x.db")

	cfg := FromEnv()
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "g-key", cfg.Image.APIKey)
	assert.Equal(t, "256x256", cfg.Image.Size)
	assert.Equal(t, "imagen-test", cfg.Image.Model)
	assert.Equal(t, "/tmp/x.db", cfg.DB)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingCredential(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)

	// Text key alone is not enough while images are enabled.
	cfg.LLM.Gemini.APIKey = "text-only"
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)

	cfg.SkipImages = true
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Settings(t *testing.T) {
	base := Default()
	base.LLM.Provider = "mock"
	base.Image.APIKey = "k"
	require.NoError(t, base.Validate())

	cfg := base
	cfg.Concurrency = 0
	assert.Error(t, cfg.Validate())

	cfg = base
	cfg.Image.Size = "big"
	assert.Error(t, cfg.Validate())

	cfg = base
	cfg.Output = ""
	assert.Error(t, cfg.Validate())
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("MATHGEN_IMAGE_SIZE", "256x256")

	path := writeConfig(t, `
input: in/base.json
concurrency: 4
image:
  size: 1024x768
  backoff: 500ms
llm:
  provider: mock
pdf:
  title: Weekly Practice
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "in/base.json", cfg.Input)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "1024x768", cfg.Image.Size)
	assert.Equal(t, 500*time.Millisecond, cfg.Image.Backoff)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, "Weekly Practice", cfg.PDF.Title)
	// Untouched values keep their defaults and env overlays.
	assert.Equal(t, "g-key", cfg.Image.APIKey)
	assert.Equal(t, 3, cfg.Image.MaxRetries)
	assert.Equal(t, "output/generated_questions.pdf", cfg.Output)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown key", content: "inputs: typo.json\n"},
		{name: "unknown nested key", content: "image:\n  colour: red\n"},
		{name: "multiple documents", content: "input: a.json\n---\ninput: b.json\n"},
		{name: "wrong type", content: "concurrency: many\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, LoadFile(writeConfig(t, tt.content), &cfg))
		})
	}
}

func TestLoadFile_Empty(t *testing.T) {
	cfg := Default()
	require.NoError(t, LoadFile(writeConfig(t, ""), &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := Default()
	err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), &cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
