package extract

import (
	"strings"

	"github.com/sells-group/contract-cli/internal/contract"
)

// Merge combines per-section extraction results into one answer. NotFound
// entries are discarded, multi-clause responses are split on the delimiter,
// and candidates are deduplicated by case-insensitive containment: a
// candidate is dropped when it is a substring of, or contains, one already
// kept (first seen wins, order preserved). Near-duplicates that are not
// substrings of each other are intentionally not collapsed.
func Merge(findings []contract.ExtractionResult) contract.ExtractionResult {
	var candidates []string
	for _, f := range findings {
		if !f.Found() {
			continue
		}
		for _, part := range strings.Split(f.Text(), "|||") {
			part = strings.TrimSpace(part)
			if part != "" {
				candidates = append(candidates, part)
			}
		}
	}

	// The kept set is containment-free, so a candidate cannot both be
	// contained in a kept entry and contain another one.
	var unique []string
	for _, cand := range candidates {
		candLower := strings.ToLower(cand)

		contained := false
		for _, kept := range unique {
			if strings.Contains(strings.ToLower(kept), candLower) {
				contained = true
				break
			}
		}
		if contained {
			continue
		}

		// The candidate may subsume several kept entries: the longer text
		// takes the earliest such slot and the rest are dropped.
		replaced := false
		kept := unique[:0]
		for _, k := range unique {
			if strings.Contains(candLower, strings.ToLower(k)) {
				if !replaced {
					kept = append(kept, cand)
					replaced = true
				}
				continue
			}
			kept = append(kept, k)
		}
		unique = kept
		if !replaced {
			unique = append(unique, cand)
		}
	}

	if len(unique) == 0 {
		return contract.NotFound
	}
	return contract.Found(strings.Join(unique, Delimiter))
}
