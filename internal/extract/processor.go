package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/contract-cli/internal/contract"
	"github.com/sells-group/contract-cli/internal/llm"
	"github.com/sells-group/contract-cli/internal/pdftext"
)

const (
	// maxSectionsPerClause caps API spend per clause type when targeted
	// sections were found.
	maxSectionsPerClause = 8

	// minContractChars is the contract-level floor: shorter extracted text
	// short-circuits without any model calls.
	minContractChars = 100
)

// Per-contract pipeline states. error is absorbing and reachable from any
// step.
type contractState string

const (
	statePending          contractState = "pending"
	stateTextExtracted    contractState = "text-extracted"
	stateNormalized       contractState = "normalized"
	stateClausesExtracted contractState = "clauses-extracted"
	stateSummarized       contractState = "summarized"
	stateDone             contractState = "done"
	stateError            contractState = "error"
)

// ProcessorOptions configure a Processor.
type ProcessorOptions struct {
	ChunkSize    int
	ChunkOverlap int
	UseFewShot   bool
}

// Processor orchestrates one contract end to end: text extraction,
// normalization, the three clause extractions, and the summary call.
type Processor struct {
	client     *Client
	chat       llm.Chat
	extractor  pdftext.Extractor
	chunker    *Chunker
	useFewShot bool
}

// NewProcessor builds a Processor. Chunker geometry is validated here so a
// bad overlap/size pair fails at construction, not mid-batch. An unset
// ChunkSize selects the default geometry; an explicit ChunkSize takes
// ChunkOverlap literally, so zero overlap is configurable.
func NewProcessor(chat llm.Chat, extractor pdftext.Extractor, opts ProcessorOptions) (*Processor, error) {
	size := opts.ChunkSize
	overlap := opts.ChunkOverlap
	if size <= 0 {
		size = DefaultChunkSize
		if overlap <= 0 {
			overlap = DefaultChunkOverlap
		}
	}
	chunker, err := NewChunker(size, overlap)
	if err != nil {
		return nil, err
	}

	return &Processor{
		client:     NewClient(chat),
		chat:       chat,
		extractor:  extractor,
		chunker:    chunker,
		useFewShot: opts.UseFewShot,
	}, nil
}

// ExtractClause runs the multi-stage pipeline for one clause type: section
// selection, chunking fallback, per-section extraction, merge and dedup.
// Hard API failures propagate; an absent clause is NotFound.
func (p *Processor) ExtractClause(ctx context.Context, contractText string, ct contract.ClauseType) (contract.ExtractionResult, error) {
	sections := SelectSections(contractText, ct)

	if IsFallback(sections, contractText) {
		// No targeted sections; cover the whole text with overlapping
		// windows instead.
		sections = p.chunker.Chunk(contractText)
		zap.L().Debug("no targeted sections, chunking full text",
			zap.String("clause_type", string(ct)),
			zap.Int("chunks", len(sections)),
		)
	} else if len(sections) > maxSectionsPerClause {
		sections = sections[:maxSectionsPerClause]
	}

	var findings []contract.ExtractionResult
	for i, section := range sections {
		result, err := p.client.ExtractFromText(ctx, section, ct, p.useFewShot)
		if err != nil {
			return contract.NotFound, eris.Wrapf(err, "extract: section %d/%d", i+1, len(sections))
		}
		if result.Found() {
			findings = append(findings, result)
		}
	}

	merged := Merge(findings)
	zap.L().Debug("clause extraction merged",
		zap.String("clause_type", string(ct)),
		zap.Int("sections", len(sections)),
		zap.Int("findings", len(findings)),
		zap.Bool("found", merged.Found()),
	)
	return merged, nil
}

// ProcessText runs clause extraction for every clause type plus the summary
// call over already-normalized contract text. The first hard failure aborts
// the remaining steps and propagates; partial results are discarded by the
// caller per the coarse-grained failure policy.
func (p *Processor) ProcessText(ctx context.Context, contractText string) (map[contract.ClauseType]contract.ExtractionResult, string, error) {
	return p.processStages(ctx, contractText, func(contractState) {})
}

func (p *Processor) processStages(ctx context.Context, contractText string, step func(contractState)) (map[contract.ClauseType]contract.ExtractionResult, string, error) {
	clauses := make(map[contract.ClauseType]contract.ExtractionResult, len(contract.AllClauseTypes))
	for _, ct := range contract.AllClauseTypes {
		zap.L().Info("extracting clause", zap.String("clause_type", string(ct)))
		result, err := p.ExtractClause(ctx, contractText, ct)
		if err != nil {
			return nil, "", err
		}
		clauses[ct] = result
	}
	step(stateClausesExtracted)

	zap.L().Info("generating contract summary")
	summary, err := Summarize(ctx, p.chat, contractText)
	if err != nil {
		return nil, "", err
	}
	step(stateSummarized)

	return clauses, summary, nil
}

// ProcessFile processes one contract PDF into a result record. It never
// returns an error: any hard failure transitions the contract to the error
// state and yields a record with "Error" placeholders, so a single bad
// contract cannot abort the batch.
func (p *Processor) ProcessFile(ctx context.Context, pdfPath string) *contract.Record {
	id := ContractID(pdfPath)
	log := zap.L().With(zap.String("contract_id", id))

	state := statePending
	step := func(s contractState) {
		state = s
		log.Debug("state transition", zap.String("state", string(s)))
	}

	log.Info("processing contract", zap.String("path", pdfPath))

	rawText, err := p.extractor.ExtractText(ctx, pdfPath)
	if err != nil {
		log.Error("text extraction failed", zap.Error(err))
		step(stateError)
		return errorRecord(id, err)
	}
	step(stateTextExtracted)

	contractText := pdftext.Normalize(rawText)
	step(stateNormalized)

	if len(contractText) < minContractChars {
		log.Warn("insufficient text extracted", zap.Int("chars", len(contractText)))
		step(stateError)
		return &contract.Record{
			ContractID:            id,
			Summary:               contract.MsgInsufficientText,
			TerminationClause:     contract.ValueNotFound,
			ConfidentialityClause: contract.ValueNotFound,
			LiabilityClause:       contract.ValueNotFound,
			Status:                contract.StatusError,
		}
	}

	log.Info("text normalized", zap.Int("chars", len(contractText)))

	clauses, summary, err := p.processStages(ctx, contractText, step)
	if err != nil {
		log.Error("contract processing failed",
			zap.String("state", string(state)),
			zap.Error(err),
		)
		step(stateError)
		return errorRecord(id, err)
	}

	rec := &contract.Record{
		ContractID:            id,
		Summary:               summary,
		TerminationClause:     clauses[contract.ClauseTermination].ColumnValue(),
		ConfidentialityClause: clauses[contract.ClauseConfidentiality].ColumnValue(),
		LiabilityClause:       clauses[contract.ClauseLiability].ColumnValue(),
		ContractLength:        len(contractText),
		WordCount:             contract.CountWords(contractText),
		SummaryWordCount:      contract.CountWords(summary),
		Status:                contract.StatusSuccess,
	}
	step(stateDone)

	log.Info("contract processed",
		zap.String("state", string(state)),
		zap.Bool("termination_found", rec.ClauseFound(contract.ClauseTermination)),
		zap.Bool("confidentiality_found", rec.ClauseFound(contract.ClauseConfidentiality)),
		zap.Bool("liability_found", rec.ClauseFound(contract.ClauseLiability)),
	)
	return rec
}

// errorRecord fills every unfinished field with placeholders for a contract
// that hit the absorbing error state.
func errorRecord(id string, err error) *contract.Record {
	return &contract.Record{
		ContractID:            id,
		Summary:               "Error: " + err.Error(),
		TerminationClause:     contract.ValueError,
		ConfidentialityClause: contract.ValueError,
		LiabilityClause:       contract.ValueError,
		Status:                contract.StatusError,
	}
}

// ContractID derives the contract identifier from the PDF filename.
func ContractID(path string) string {
	if path == "" {
		return "unknown_contract"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
