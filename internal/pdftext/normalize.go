package pdftext

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	pageOfPattern = regexp.MustCompile(`(?i)Page\s+\d+\s+of\s+\d+`)
	pagePattern   = regexp.MustCompile(`(?i)Page\s+\d+`)
	multiNewline  = regexp.MustCompile(`\n{2,}`)
	spaceRun      = regexp.MustCompile(`[ \t]+`)
)

// Normalize cleans raw extracted contract text: carriage returns become
// newlines, page-number furniture is stripped, blank-line runs collapse to a
// single paragraph break, and space runs collapse to one space. The result
// is NFC-normalized and trimmed. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r", "\n")
	text = pageOfPattern.ReplaceAllString(text, "")
	text = pagePattern.ReplaceAllString(text, "")
	text = multiNewline.ReplaceAllString(text, "\n\n")
	text = spaceRun.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
