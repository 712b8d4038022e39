package contract

import "strings"

// Sentinel values used in result records for absent or failed extractions.
const (
	ValueNotFound = "Not found"
	ValueError    = "Error"

	// MsgInsufficientText is the summary recorded when a PDF yields too
	// little text to analyze.
	MsgInsufficientText = "Failed to extract sufficient text"
)

// ExtractionResult is the outcome of a single clause extraction: either the
// verbatim clause text or an explicit not-found. Hard failures travel as Go
// errors alongside this type, never inside it.
type ExtractionResult struct {
	found bool
	text  string
}

// Found wraps non-empty clause text as a positive result.
func Found(text string) ExtractionResult {
	return ExtractionResult{found: true, text: text}
}

// NotFound is the absent-clause result.
var NotFound = ExtractionResult{}

// Found reports whether a clause was extracted.
func (r ExtractionResult) Found() bool { return r.found }

// Text returns the extracted clause text, or "" for NotFound.
func (r ExtractionResult) Text() string { return r.text }

// ColumnValue renders the result as it appears in a record column.
func (r ExtractionResult) ColumnValue() string {
	if !r.found {
		return ValueNotFound
	}
	return r.text
}

// Status marks whether a contract was processed end to end.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Record is the immutable per-contract result row.
type Record struct {
	ContractID            string `json:"contract_id"`
	Summary               string `json:"summary"`
	TerminationClause     string `json:"termination_clause"`
	ConfidentialityClause string `json:"confidentiality_clause"`
	LiabilityClause       string `json:"liability_clause"`
	ContractLength        int    `json:"contract_length"`
	WordCount             int    `json:"word_count"`
	SummaryWordCount      int    `json:"summary_word_count"`
	Status                Status `json:"status"`
}

// Clause returns the record value for the given clause type.
func (r *Record) Clause(ct ClauseType) string {
	switch ct {
	case ClauseTermination:
		return r.TerminationClause
	case ClauseConfidentiality:
		return r.ConfidentialityClause
	case ClauseLiability:
		return r.LiabilityClause
	}
	return ""
}

// ClauseFound reports whether the record holds real clause text for ct, as
// opposed to a "Not found"/"Error" placeholder.
func (r *Record) ClauseFound(ct ClauseType) bool {
	v := r.Clause(ct)
	return v != "" && v != ValueNotFound && v != ValueError
}

// CountWords counts whitespace-separated tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
