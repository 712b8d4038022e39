package extract

import (
	"strings"

	"github.com/sells-group/contract-cli/internal/contract"
)

// minClauseChars rejects responses too short to be real clause text.
const minClauseChars = 20

// responsePrefixes are boilerplate lead-ins some models prepend despite the
// prompt asking for clause text only.
var responsePrefixes = []string{
	"Extracted Clause(s):",
	"Extracted Termination Clause:",
	"Extracted Confidentiality Clause:",
	"Extracted Liability Clause:",
	"Extracted Clause:",
	"The clause is:",
	"Answer:",
	"Clause:",
}

// negativeIndicators are phrases that mark a response as a no-clause answer
// even when it also contains other text. A negative indicator always wins
// over accompanying clause text.
var negativeIndicators = []string{
	"no termination clause",
	"no confidentiality clause",
	"no liability clause",
	"clause is not present",
	"does not contain",
	"no such clause",
	"clause not found",
}

// ParseClauseResponse normalizes a free-text model response into an
// ExtractionResult. It strips known prefixes, maps NOT_FOUND tokens and
// negative-indicator phrases to NotFound, rejects too-short responses, and
// otherwise returns the trimmed text verbatim.
func ParseClauseResponse(response string) contract.ExtractionResult {
	cleaned := strings.TrimSpace(response)
	for _, prefix := range responsePrefixes {
		if strings.HasPrefix(cleaned, prefix) {
			cleaned = strings.TrimSpace(cleaned[len(prefix):])
		}
	}

	upper := strings.ToUpper(cleaned)
	if strings.Contains(upper, "NOT_FOUND") || strings.Contains(upper, "NOT FOUND") {
		return contract.NotFound
	}

	lower := strings.ToLower(cleaned)
	for _, indicator := range negativeIndicators {
		if strings.Contains(lower, indicator) {
			return contract.NotFound
		}
	}

	if len(cleaned) < minClauseChars {
		return contract.NotFound
	}

	return contract.Found(cleaned)
}
