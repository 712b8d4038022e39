// Package pdftext extracts and normalizes text from contract PDFs.
package pdftext

import (
	"context"

	"github.com/rotisserie/eris"
)

// Extractor extracts text content from PDF files. Implementations are
// best-effort: an empty result is valid output, not an error; the caller
// decides whether the text is sufficient.
type Extractor interface {
	ExtractText(ctx context.Context, pdfPath string) (string, error)
}

// Config selects and orders the extraction strategies.
type Config struct {
	PdfToTextPath string
	PdfToTextRaw  bool // also try pdftotext without -layout and keep the longer result
}

// NewExtractor builds the configured extractor chain.
func NewExtractor(cfg Config) (Extractor, error) {
	layout := NewPdfToText(cfg.PdfToTextPath, true)
	if !cfg.PdfToTextRaw {
		return layout, nil
	}
	raw := NewPdfToText(cfg.PdfToTextPath, false)
	chain, err := NewBestOf(layout, raw)
	if err != nil {
		return nil, eris.Wrap(err, "pdftext: build extractor chain")
	}
	return chain, nil
}
