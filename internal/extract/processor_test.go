package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sells-group/contract-cli/internal/contract"
	"github.com/sells-group/contract-cli/internal/llm"
)

// neutralContract contains no keyword stems for any clause type, forcing the
// chunking fallback for all three.
const neutralContract = `The parties agree to meet at the offices of the vendor on the first day of every month to review the delivery schedule for the goods described in the annex. Each shipment shall be counted and logged by the receiving clerk, and the totals shall be reported to both parties before the end of that week.

The vendor shall provide a replacement for any item found to be defective on arrival, and the buyer shall settle each invoice within forty five days of its receipt at the address shown in the annex.`

// fakeChat scripts model responses by inspecting the request.
type fakeChat struct {
	calls   []llm.Request
	respond func(req llm.Request) (string, error)
}

func (f *fakeChat) Complete(_ context.Context, req llm.Request) (string, error) {
	f.calls = append(f.calls, req)
	return f.respond(req)
}

func notFoundExceptSummary(req llm.Request) (string, error) {
	if req.System == summarySystemPrompt {
		return "This agreement covers monthly supply deliveries, vendor replacement duties, and buyer payment obligations with late settlement penalties.", nil
	}
	return "NOT_FOUND", nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(context.Context, string) (string, error) {
	return f.text, f.err
}

func newTestProcessor(t *testing.T, chat llm.Chat, ex *fakeExtractor) *Processor {
	t.Helper()
	p, err := NewProcessor(chat, ex, ProcessorOptions{UseFewShot: true})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestProcessFile_EndToEndNoKeywords(t *testing.T) {
	chat := &fakeChat{respond: notFoundExceptSummary}
	p := newTestProcessor(t, chat, &fakeExtractor{text: neutralContract})

	rec := p.ProcessFile(context.Background(), "/contracts/SupplyAgreement.pdf")

	if rec.Status != contract.StatusSuccess {
		t.Fatalf("expected success status, got %s", rec.Status)
	}
	if rec.ContractID != "SupplyAgreement" {
		t.Errorf("unexpected contract id %q", rec.ContractID)
	}
	for _, ct := range contract.AllClauseTypes {
		if rec.Clause(ct) != contract.ValueNotFound {
			t.Errorf("%s should be %q, got %q", ct, contract.ValueNotFound, rec.Clause(ct))
		}
	}
	if rec.Summary == "" || strings.HasPrefix(rec.Summary, "Error") {
		t.Errorf("summary should be populated, got %q", rec.Summary)
	}
	if rec.SummaryWordCount == 0 {
		t.Error("summary word count should be set")
	}
	if rec.WordCount == 0 || rec.ContractLength == 0 {
		t.Error("contract metrics should be set")
	}

	// Under the chunk size the fallback is a single window, so exactly one
	// extraction call per clause type plus one summary call.
	if len(chat.calls) != 4 {
		t.Errorf("expected 4 model calls, got %d", len(chat.calls))
	}
}

func TestProcessFile_ClauseFound(t *testing.T) {
	clause := "Either party may terminate this Agreement upon thirty (30) days prior written notice."
	text := neutralContract + "\n\n" + clause

	chat := &fakeChat{respond: func(req llm.Request) (string, error) {
		if strings.Contains(req.Prompt, "termination provisions") {
			return "Extracted Clause: " + clause, nil
		}
		return notFoundExceptSummary(req)
	}}
	p := newTestProcessor(t, chat, &fakeExtractor{text: text})

	rec := p.ProcessFile(context.Background(), "lease.pdf")

	if rec.TerminationClause != clause {
		t.Errorf("expected termination clause %q, got %q", clause, rec.TerminationClause)
	}
	if !rec.ClauseFound(contract.ClauseTermination) {
		t.Error("ClauseFound should report the termination clause")
	}
	if rec.ClauseFound(contract.ClauseConfidentiality) {
		t.Error("confidentiality should be absent")
	}
}

func TestProcessFile_DuplicateSectionsMerged(t *testing.T) {
	short := "A landlord may terminate."
	long := "A landlord may terminate. Notice required in writing at least thirty days ahead."
	// Two distinct matching paragraphs produce overlapping findings.
	text := "Tenancy may terminate when the lease period lapses without renewal by the tenant in place.\n\n" +
		"The landlord may likewise terminate the tenancy for unpaid rent after notice is given."

	var call int
	chat := &fakeChat{respond: func(req llm.Request) (string, error) {
		if req.System == summarySystemPrompt {
			return "Summary of the tenancy agreement and both parties' duties through the notice process.", nil
		}
		if strings.Contains(req.Prompt, "termination provisions") {
			call++
			if call == 1 {
				return short, nil
			}
			return long, nil
		}
		return "NOT_FOUND", nil
	}}
	p := newTestProcessor(t, chat, &fakeExtractor{text: text})

	rec := p.ProcessFile(context.Background(), "tenancy.pdf")
	if rec.TerminationClause != long {
		t.Errorf("containment dedup should keep the superstring, got %q", rec.TerminationClause)
	}
}

func TestProcessFile_ExtractorErrorYieldsErrorRecord(t *testing.T) {
	p := newTestProcessor(t, &fakeChat{respond: notFoundExceptSummary},
		&fakeExtractor{err: errors.New("pdftotext: exit status 1")})

	rec := p.ProcessFile(context.Background(), "broken.pdf")
	if rec.Status != contract.StatusError {
		t.Fatalf("expected error status, got %s", rec.Status)
	}
	if rec.TerminationClause != contract.ValueError {
		t.Errorf("clause fields should carry the error placeholder, got %q", rec.TerminationClause)
	}
	if !strings.HasPrefix(rec.Summary, "Error:") {
		t.Errorf("summary should carry the error, got %q", rec.Summary)
	}
}

func TestProcessFile_InsufficientTextShortCircuits(t *testing.T) {
	chat := &fakeChat{respond: notFoundExceptSummary}
	p := newTestProcessor(t, chat, &fakeExtractor{text: "too short"})

	rec := p.ProcessFile(context.Background(), "scan.pdf")
	if rec.Status != contract.StatusError {
		t.Fatalf("expected error status, got %s", rec.Status)
	}
	if rec.Summary != contract.MsgInsufficientText {
		t.Errorf("unexpected summary %q", rec.Summary)
	}
	if rec.TerminationClause != contract.ValueNotFound {
		t.Errorf("clauses should be %q, got %q", contract.ValueNotFound, rec.TerminationClause)
	}
	if len(chat.calls) != 0 {
		t.Errorf("no model calls should be made, got %d", len(chat.calls))
	}
}

func TestProcessText_HardFailurePropagates(t *testing.T) {
	chat := &fakeChat{respond: func(llm.Request) (string, error) {
		return "", errors.New("api: retries exhausted")
	}}
	p := newTestProcessor(t, chat, &fakeExtractor{text: neutralContract})

	if _, _, err := p.ProcessText(context.Background(), neutralContract); err == nil {
		t.Fatal("hard API failure should propagate from ProcessText")
	}

	rec := p.ProcessFile(context.Background(), "doc.pdf")
	if rec.Status != contract.StatusError {
		t.Error("hard failure should mark the whole contract errored")
	}
}

func TestNewProcessor_ChunkGeometry(t *testing.T) {
	tests := []struct {
		name                  string
		opts                  ProcessorOptions
		wantSize, wantOverlap int
	}{
		{"unset_defaults", ProcessorOptions{}, DefaultChunkSize, DefaultChunkOverlap},
		{"explicit_zero_overlap", ProcessorOptions{ChunkSize: 10000, ChunkOverlap: 0}, 10000, 0},
		{"explicit_geometry", ProcessorOptions{ChunkSize: 5000, ChunkOverlap: 250}, 5000, 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProcessor(&fakeChat{}, &fakeExtractor{}, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if p.chunker.size != tt.wantSize || p.chunker.overlap != tt.wantOverlap {
				t.Errorf("chunker geometry = %d/%d, want %d/%d",
					p.chunker.size, p.chunker.overlap, tt.wantSize, tt.wantOverlap)
			}
		})
	}
}

func TestContractID(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"/data/raw/Acme_Services_Agreement.pdf", "Acme_Services_Agreement"},
		{"lease.pdf", "lease"},
		{"", "unknown_contract"},
	}
	for _, tt := range tests {
		if got := ContractID(tt.path); got != tt.want {
			t.Errorf("ContractID(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
