package pdftext

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/rotisserie/eris"
)

// PdfToText extracts text from PDFs using the pdftotext CLI tool.
type PdfToText struct {
	binPath string
	layout  bool
}

// NewPdfToText creates a PdfToText extractor. If binPath is empty,
// "pdftotext" is used. layout preserves the physical page layout, which
// keeps paragraph boundaries intact for section selection.
func NewPdfToText(binPath string, layout bool) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &PdfToText{binPath: binPath, layout: layout}
}

// ExtractText runs pdftotext on the given PDF and returns stdout.
func (p *PdfToText) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	args := make([]string, 0, 3)
	if p.layout {
		args = append(args, "-layout")
	}
	args = append(args, pdfPath, "-")

	cmd := exec.CommandContext(ctx, p.binPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "pdftext: pdftotext failed for %s: %s", pdfPath, stderr.String())
	}

	return stdout.String(), nil
}
