package contract

import "testing"

func TestExtractionResultColumnValue(t *testing.T) {
	if got := NotFound.ColumnValue(); got != ValueNotFound {
		t.Errorf("NotFound column = %q", got)
	}
	if got := Found("the clause text").ColumnValue(); got != "the clause text" {
		t.Errorf("found column = %q", got)
	}
	if NotFound.Found() {
		t.Error("NotFound should not report found")
	}
}

func TestClauseAccessors(t *testing.T) {
	rec := &Record{
		TerminationClause:     "termination text",
		ConfidentialityClause: ValueNotFound,
		LiabilityClause:       ValueError,
	}

	if got := rec.Clause(ClauseTermination); got != "termination text" {
		t.Errorf("termination = %q", got)
	}
	if !rec.ClauseFound(ClauseTermination) {
		t.Error("termination should be found")
	}
	if rec.ClauseFound(ClauseConfidentiality) {
		t.Error("placeholder should not count as found")
	}
	if rec.ClauseFound(ClauseLiability) {
		t.Error("error placeholder should not count as found")
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"two  words", 2},
		{"line\nbreaks\tand spaces", 4},
	}
	for _, tt := range tests {
		if got := CountWords(tt.in); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClauseTypes(t *testing.T) {
	if len(AllClauseTypes) != 3 {
		t.Fatalf("expected 3 clause types, got %d", len(AllClauseTypes))
	}
	for _, ct := range AllClauseTypes {
		if !ct.Valid() {
			t.Errorf("%s should be valid", ct)
		}
		if len(ct.Keywords()) == 0 {
			t.Errorf("%s should carry keywords", ct)
		}
	}
	if ClauseType("payment").Valid() {
		t.Error("unknown clause type should be invalid")
	}
}
