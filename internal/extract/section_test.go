package extract

import (
	"strings"
	"testing"

	"github.com/sells-group/contract-cli/internal/contract"
)

func TestSelectSections_KeywordMatch(t *testing.T) {
	text := strings.Join([]string{
		"This paragraph describes the purchase of office supplies and furniture for the new premises.",
		"Either party may terminate this Agreement upon thirty days written notice to the other party.",
		"All payments are due within forty-five days of the invoice date as set forth in Schedule A.",
	}, "\n\n")

	sections := SelectSections(text, contract.ClauseTermination)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if !strings.Contains(sections[0], "terminate this Agreement") {
		t.Errorf("unexpected section content: %q", sections[0])
	}
}

func TestSelectSections_NoMatchReturnsFullText(t *testing.T) {
	text := strings.Join([]string{
		"This paragraph describes the purchase of office supplies for the new premises in town.",
		"All invoices are due within forty-five days and must quote the purchase order number.",
	}, "\n\n")

	sections := SelectSections(text, contract.ClauseTermination)
	if len(sections) != 1 {
		t.Fatalf("expected single fallback section, got %d", len(sections))
	}
	if sections[0] != text {
		t.Error("fallback section should be the full input verbatim")
	}
	if !IsFallback(sections, text) {
		t.Error("IsFallback should report the fallback signal")
	}
}

func TestSelectSections_ShortParagraphsDropped(t *testing.T) {
	text := "terminate\n\n" + // under the noise floor even though it matches
		"Either party may terminate this Agreement upon thirty days written notice to the other."

	sections := SelectSections(text, contract.ClauseTermination)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0] == "terminate" {
		t.Error("short paragraph should have been filtered out")
	}
}

func TestSelectSections_RanksByKeywordHits(t *testing.T) {
	// 12 matching paragraphs: the first 11 match one keyword each, the last
	// matches three. Selection must keep 10, with the densest first.
	var paras []string
	for i := 0; i < 11; i++ {
		paras = append(paras, strings.Repeat("filler words here ", 3)+"this agreement may terminate early on notice.")
	}
	dense := "The agreement shall terminate, may not renew after expiry, and shall expire on renewal of the lease term without further notice to anyone."
	paras = append(paras, dense)

	sections := SelectSections(strings.Join(paras, "\n\n"), contract.ClauseTermination)
	if len(sections) != 10 {
		t.Fatalf("expected 10 sections, got %d", len(sections))
	}
	if sections[0] != dense {
		t.Errorf("densest paragraph should rank first, got %q", sections[0])
	}
	// Ties preserve original order.
	if sections[1] != paras[0] {
		t.Error("tied paragraphs should keep document order")
	}
}

func TestSelectSections_AlwaysAtLeastOne(t *testing.T) {
	sections := SelectSections("", contract.ClauseLiability)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section for empty input, got %d", len(sections))
	}
}
