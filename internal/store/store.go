package store

import (
	"context"

	"github.com/sells-group/contract-cli/internal/contract"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status contract.RunStatus `json:"status,omitempty"`
	Limit  int                `json:"limit,omitempty"`
	Offset int                `json:"offset,omitempty"`
}

// Store defines the persistence interface for contract analysis results.
type Store interface {
	// Runs
	CreateRun(ctx context.Context) (*contract.Run, error)
	CompleteRun(ctx context.Context, runID string, status contract.RunStatus, stats *contract.RunStats) error
	GetRun(ctx context.Context, runID string) (*contract.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]contract.Run, error)

	// Contract records
	SaveRecord(ctx context.Context, runID string, rec *contract.Record) error
	ListRecords(ctx context.Context, runID string) ([]contract.Record, error)

	// Clause index for semantic search
	IndexClauses(ctx context.Context, runID string, rec *contract.Record) (int, error)
	ListClauses(ctx context.Context) ([]contract.ClauseEntry, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
