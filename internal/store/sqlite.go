package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/contract-cli/internal/contract"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	status     TEXT NOT NULL DEFAULT 'running',
	stats      TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS contracts (
	id                     TEXT PRIMARY KEY,
	run_id                 TEXT NOT NULL REFERENCES runs(id),
	contract_id            TEXT NOT NULL,
	summary                TEXT NOT NULL,
	termination_clause     TEXT NOT NULL,
	confidentiality_clause TEXT NOT NULL,
	liability_clause       TEXT NOT NULL,
	contract_length        INTEGER NOT NULL,
	word_count             INTEGER NOT NULL,
	summary_word_count     INTEGER NOT NULL,
	status                 TEXT NOT NULL,
	created_at             DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS clauses (
	id          TEXT PRIMARY KEY,
	run_id      TEXT NOT NULL REFERENCES runs(id),
	contract_id TEXT NOT NULL,
	clause_type TEXT NOT NULL,
	clause_text TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_contracts_run_id ON contracts(run_id);
CREATE INDEX IF NOT EXISTS idx_contracts_contract_id ON contracts(contract_id);
CREATE INDEX IF NOT EXISTS idx_clauses_contract_id ON clauses(contract_id);
CREATE INDEX IF NOT EXISTS idx_clauses_clause_type ON clauses(clause_type);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context) (*contract.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, status, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, string(contract.RunStatusRunning), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &contract.Run{
		ID:        id,
		Status:    contract.RunStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, status contract.RunStatus, stats *contract.RunStats) error {
	var statsJSON sql.NullString
	if stats != nil {
		b, err := json.Marshal(stats)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal stats")
		}
		statsJSON = sql.NullString{String: string(b), Valid: true}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, stats = ?, updated_at = ? WHERE id = ?`,
		string(status), statsJSON, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete run %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*contract.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, stats, created_at, updated_at FROM runs WHERE id = ?`,
		runID,
	)
	return scanRun(row)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]contract.Run, error) {
	query := `SELECT id, status, stats, created_at, updated_at FROM runs WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []contract.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

// SaveRecord persists one contract record.
func (s *SQLiteStore) SaveRecord(ctx context.Context, runID string, rec *contract.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contracts (id, run_id, contract_id, summary,
			termination_clause, confidentiality_clause, liability_clause,
			contract_length, word_count, summary_word_count, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), runID, rec.ContractID, rec.Summary,
		rec.TerminationClause, rec.ConfidentialityClause, rec.LiabilityClause,
		rec.ContractLength, rec.WordCount, rec.SummaryWordCount, string(rec.Status), time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: insert contract %s", rec.ContractID)
}

// IndexClauses stores the record's extracted clauses for semantic search and
// returns how many were indexed. Placeholder values are skipped.
func (s *SQLiteStore) IndexClauses(ctx context.Context, runID string, rec *contract.Record) (int, error) {
	now := time.Now().UTC()

	var n int
	for _, ct := range contract.AllClauseTypes {
		if !rec.ClauseFound(ct) {
			continue
		}
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO clauses (id, run_id, contract_id, clause_type, clause_text, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), runID, rec.ContractID, string(ct), rec.Clause(ct), now,
		)
		if err != nil {
			return n, eris.Wrapf(err, "sqlite: insert clause %s/%s", rec.ContractID, ct)
		}
		n++
	}
	return n, nil
}

func (s *SQLiteStore) ListRecords(ctx context.Context, runID string) ([]contract.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT contract_id, summary, termination_clause, confidentiality_clause,
			liability_clause, contract_length, word_count, summary_word_count, status
		 FROM contracts WHERE run_id = ? ORDER BY created_at, contract_id`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list records for run %s", runID)
	}
	defer rows.Close()

	var records []contract.Record
	for rows.Next() {
		var rec contract.Record
		var status string
		err := rows.Scan(&rec.ContractID, &rec.Summary,
			&rec.TerminationClause, &rec.ConfidentialityClause, &rec.LiabilityClause,
			&rec.ContractLength, &rec.WordCount, &rec.SummaryWordCount, &status)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		rec.Status = contract.Status(status)
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list records iterate")
}

// ListClauses returns every indexed clause across all runs, newest first.
func (s *SQLiteStore) ListClauses(ctx context.Context) ([]contract.ClauseEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT contract_id, clause_type, clause_text FROM clauses ORDER BY created_at DESC, contract_id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list clauses")
	}
	defer rows.Close()

	var entries []contract.ClauseEntry
	for rows.Next() {
		var e contract.ClauseEntry
		var ct string
		if err := rows.Scan(&e.ContractID, &ct, &e.Text); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan clause")
		}
		e.Type = contract.ClauseType(ct)
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: list clauses iterate")
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*contract.Run, error) {
	var r contract.Run
	var statsJSON sql.NullString

	err := row.Scan(&r.ID, &r.Status, &statsJSON, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("run not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan run")
	}

	if statsJSON.Valid {
		r.Stats = &contract.RunStats{}
		if err := json.Unmarshal([]byte(statsJSON.String), r.Stats); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal stats")
		}
	}
	return &r, nil
}
