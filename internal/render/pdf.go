package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"

	"github.com/abhisek/mathgen/internal/tagged"
)

// CorrectMarker prefixes the correct option in the PDF.
const CorrectMarker = "» "

// PDFConfig controls page geometry and typography.
type PDFConfig struct {
	PageSize   string  `yaml:"page_size"`
	MarginsMM  float64 `yaml:"margins_mm"`
	FontFamily string  `yaml:"font_family"`
	// Title is the document heading. Empty means DefaultTitle.
	Title string `yaml:"title"`
}

// DefaultPDFConfig returns A4 pages with Helvetica.
func DefaultPDFConfig() PDFConfig {
	return PDFConfig{
		PageSize:   "A4",
		MarginsMM:  20,
		FontFamily: "Helvetica",
		Title:      DefaultTitle,
	}
}

// PDFWriter renders question records into a PDF document.
type PDFWriter struct {
	cfg PDFConfig
	// compress is disabled in tests so page text can be inspected.
	compress bool
}

// NewPDFWriter creates a PDFWriter.
func NewPDFWriter(cfg PDFConfig) *PDFWriter {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	return &PDFWriter{cfg: cfg, compress: true}
}

// WritePDF renders records to path with cfg.
func WritePDF(path string, records []tagged.Record, cfg PDFConfig) error {
	return NewPDFWriter(cfg).WriteFile(records, path)
}

// WriteFile renders records to path, creating parent directories.
func (p *PDFWriter) WriteFile(records []tagged.Record, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := p.Write(f, records); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// Write renders records as a PDF to w.
func (p *PDFWriter) Write(w io.Writer, records []tagged.Record) error {
	pdf := fpdf.New("P", "mm", p.cfg.PageSize, "")
	pdf.SetCompression(p.compress)
	pdf.SetMargins(p.cfg.MarginsMM, p.cfg.MarginsMM, p.cfg.MarginsMM)
	pdf.SetAutoPageBreak(true, p.cfg.MarginsMM)
	pdf.SetTitle(p.cfg.Title, true)
	pdf.AddPage()

	// Core fonts are cp1252; translate UTF-8 input.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	font := p.cfg.FontFamily

	for _, b := range Layout(p.cfg.Title, records) {
		switch b.Kind {
		case KindDocTitle:
			pdf.SetFont(font, "B", 20)
			pdf.CellFormat(0, 12, tr(b.Text), "", 1, "C", false, 0, "")
			pdf.Ln(6)
		case KindHeading:
			pdf.SetFont(font, "B", 15)
			pdf.MultiCell(0, 9, tr(b.Text), "", "L", false)
		case KindSubheading:
			pdf.SetFont(font, "B", 13)
			pdf.MultiCell(0, 8, tr(b.Text), "", "L", false)
		case KindText:
			pdf.SetFont(font, "", 12)
			pdf.MultiCell(0, 7, tr(b.Text), "", "L", false)
		case KindNote, KindMeta:
			pdf.SetFont(font, "I", 11)
			pdf.MultiCell(0, 6, tr(b.Text), "", "L", false)
		case KindOption:
			if b.Correct {
				pdf.SetFont(font, "B", 12)
				pdf.MultiCell(0, 7, tr("• "+CorrectMarker+b.Text), "", "L", false)
			} else {
				pdf.SetFont(font, "", 12)
				pdf.MultiCell(0, 7, tr("• "+b.Text), "", "L", false)
			}
		case KindSpacer:
			pdf.Ln(5)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
