package report

import (
	"go.uber.org/zap"

	"github.com/sells-group/contract-cli/internal/contract"
)

// Compute aggregates batch results into run statistics. Find rates are
// computed over all records, failed ones included; word averages cover only
// successfully processed contracts.
func Compute(records []contract.Record) *contract.RunStats {
	stats := &contract.RunStats{
		Total:           len(records),
		ClauseFindRates: make(map[contract.ClauseType]float64, len(contract.AllClauseTypes)),
	}

	found := make(map[contract.ClauseType]int, len(contract.AllClauseTypes))
	var contractWords, summaryWords int

	for i := range records {
		rec := &records[i]
		for _, ct := range contract.AllClauseTypes {
			if rec.ClauseFound(ct) {
				found[ct]++
			}
		}
		if rec.Status != contract.StatusSuccess {
			stats.Failed++
			continue
		}
		stats.Succeeded++
		contractWords += rec.WordCount
		summaryWords += rec.SummaryWordCount
	}

	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Succeeded) / float64(stats.Total)
		n := float64(stats.Total)
		for _, ct := range contract.AllClauseTypes {
			stats.ClauseFindRates[ct] = float64(found[ct]) / n
		}
	}
	if stats.Succeeded > 0 {
		n := float64(stats.Succeeded)
		stats.AvgContractWords = float64(contractWords) / n
		stats.AvgSummaryWords = float64(summaryWords) / n
	}

	return stats
}

// Log emits the run statistics through the global logger.
func Log(runID string, stats *contract.RunStats) {
	fields := []zap.Field{
		zap.String("run_id", runID),
		zap.Int("total", stats.Total),
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("failed", stats.Failed),
		zap.Float64("success_rate", stats.SuccessRate),
		zap.Float64("avg_contract_words", stats.AvgContractWords),
		zap.Float64("avg_summary_words", stats.AvgSummaryWords),
	}
	for _, ct := range contract.AllClauseTypes {
		fields = append(fields, zap.Float64(string(ct)+"_find_rate", stats.ClauseFindRates[ct]))
	}
	zap.L().Info("run complete", fields...)
}
