package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathgen/internal/tagged"
)

func uncompressedWriter() *PDFWriter {
	w := NewPDFWriter(DefaultPDFConfig())
	w.compress = false
	return w
}

func TestPDFWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, uncompressedWriter().Write(&buf, []tagged.Record{sampleRecord()}))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	for _, s := range []string{
		"Generated Questions",
		"Question 1",
		"Practice Set",
		"Instruction: Choose one answer.",
		"Difficulty: easy | Subject: Quantitative Math",
		"Explanation: Subtract 3, then divide by 2.",
	} {
		assert.True(t, bytes.Contains(out, []byte(s)), "missing %q", s)
	}
	// » is 0xBB in cp1252.
	assert.True(t, bytes.Contains(out, []byte("\xbb 2")), "correct option not marked")
}

func TestPDFWriter_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "questions.pdf")
	require.NoError(t, WritePDF(path, []tagged.Record{tagged.NewRecord()}, DefaultPDFConfig()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestPDFWriter_EmptyTitleFallsBack(t *testing.T) {
	cfg := DefaultPDFConfig()
	cfg.Title = ""
	w := NewPDFWriter(cfg)
	w.compress = false

	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, nil))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte(DefaultTitle)))
}
