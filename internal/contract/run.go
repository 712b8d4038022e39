package contract

import "time"

// RunStatus tracks a batch run through its lifecycle.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one batch invocation over a directory of contract PDFs.
type Run struct {
	ID        string    `json:"id"`
	Status    RunStatus `json:"status"`
	Stats     *RunStats `json:"stats,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RunStats are the aggregate metrics of a completed run.
type RunStats struct {
	Total            int                    `json:"total"`
	Succeeded        int                    `json:"succeeded"`
	Failed           int                    `json:"failed"`
	SuccessRate      float64                `json:"success_rate"`
	ClauseFindRates  map[ClauseType]float64 `json:"clause_find_rates"`
	AvgContractWords float64                `json:"avg_contract_words"`
	AvgSummaryWords  float64                `json:"avg_summary_words"`
}

// ClauseEntry is one extracted clause as stored for semantic search.
type ClauseEntry struct {
	ContractID string     `json:"contract_id"`
	Type       ClauseType `json:"clause_type"`
	Text       string     `json:"text"`
}
