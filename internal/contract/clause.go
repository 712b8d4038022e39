// Package contract defines the domain types for contract clause extraction:
// clause categories, extraction results, and per-contract result records.
package contract

// ClauseType identifies a category of contractual provision targeted for
// extraction.
type ClauseType string

const (
	ClauseTermination     ClauseType = "termination"
	ClauseConfidentiality ClauseType = "confidentiality"
	ClauseLiability       ClauseType = "liability"
)

// AllClauseTypes lists the clause types in processing order.
var AllClauseTypes = []ClauseType{
	ClauseTermination,
	ClauseConfidentiality,
	ClauseLiability,
}

// clauseKeywords maps each clause type to the lowercase keyword stems used
// for section pre-filtering. Stems are deliberately short ("terminat",
// "indemnif") so they match inflected forms.
var clauseKeywords = map[ClauseType][]string{
	ClauseTermination: {
		"terminat", "cancel", "expire", "dissolve", "cease",
		"end of term", "term and termination", "duration", "renewal",
	},
	ClauseConfidentiality: {
		"confidential", "proprietary", "non-disclosure", "nda",
		"secret", "information", "disclosure", "protect",
	},
	ClauseLiability: {
		"liab", "indemnif", "warrant", "disclaim", "limit",
		"cap", "damages", "loss", "harm", "injury", "risk",
	},
}

// Keywords returns the keyword stems for the clause type. The returned slice
// must not be mutated.
func (ct ClauseType) Keywords() []string {
	return clauseKeywords[ct]
}

// Valid reports whether ct is a known clause type.
func (ct ClauseType) Valid() bool {
	_, ok := clauseKeywords[ct]
	return ok
}

// Column returns the result-record column name for the clause type, e.g.
// "termination_clause".
func (ct ClauseType) Column() string {
	return string(ct) + "_clause"
}
