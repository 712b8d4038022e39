// Package extract implements the clause-extraction pipeline: keyword section
// selection, chunking, prompt construction, model-response parsing, merge and
// dedup, and the per-contract orchestration over those stages.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/contract-cli/internal/contract"
)

const (
	// minParagraphChars filters out headings and page furniture.
	minParagraphChars = 50

	// maxRankedSections caps how many keyword-matching paragraphs survive
	// ranking.
	maxRankedSections = 10
)

// paragraphSplit matches blank-line paragraph boundaries.
var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// SelectSections scores and filters contract text into the paragraphs most
// likely to contain the given clause type. If no paragraph matches any
// keyword stem, the full text is returned as a single section, signaling the
// caller to fall back to chunking. Always returns at least one section.
func SelectSections(text string, ct contract.ClauseType) []string {
	keywords := ct.Keywords()
	paragraphs := paragraphSplit.Split(text, -1)

	type scored struct {
		text string
		hits int
	}

	var matches []scored
	for _, para := range paragraphs {
		if len(strings.TrimSpace(para)) < minParagraphChars {
			continue
		}
		lower := strings.ToLower(para)
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > 0 {
			matches = append(matches, scored{text: para, hits: hits})
		}
	}

	if len(matches) == 0 {
		return []string{text}
	}

	if len(matches) > maxRankedSections {
		// Stable: ties keep original document order.
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].hits > matches[j].hits
		})
		matches = matches[:maxRankedSections]
	}

	sections := make([]string, len(matches))
	for i, m := range matches {
		sections[i] = m.text
	}
	return sections
}

// IsFallback reports whether SelectSections found no targeted sections and
// returned the full text verbatim.
func IsFallback(sections []string, fullText string) bool {
	return len(sections) == 1 && sections[0] == fullText
}
