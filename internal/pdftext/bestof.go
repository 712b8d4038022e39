package pdftext

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// BestOf runs every extractor in its list and keeps the longest non-empty
// result. Individual extractor failures are logged and skipped; BestOf only
// errors when every extractor fails.
type BestOf struct {
	extractors []Extractor
}

// NewBestOf creates a BestOf chain over the given extractors.
func NewBestOf(extractors ...Extractor) (*BestOf, error) {
	if len(extractors) == 0 {
		return nil, eris.New("pdftext: best-of chain needs at least one extractor")
	}
	return &BestOf{extractors: extractors}, nil
}

// ExtractText returns the longest text produced by any extractor in the
// chain. An empty string with nil error means every extractor ran but none
// produced text.
func (b *BestOf) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	var (
		best    string
		failed  int
		lastErr error
	)

	for _, ex := range b.extractors {
		text, err := ex.ExtractText(ctx, pdfPath)
		if err != nil {
			zap.L().Debug("pdftext: extractor failed, trying next",
				zap.String("path", pdfPath),
				zap.Error(err),
			)
			failed++
			lastErr = err
			continue
		}
		if len(text) > len(best) {
			best = text
		}
	}

	if failed == len(b.extractors) {
		return "", eris.Wrapf(lastErr, "pdftext: all extractors failed for %s", pdfPath)
	}
	return best, nil
}
