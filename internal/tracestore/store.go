// Package tracestore archives service lifecycle traces in a local sqlite
// database so diagnostics survive restarts. The in-memory ring in the
// lifecycle manager stays the hot path; this store is the durable tail.
package tracestore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/lifecycle"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS service_traces (
    id TEXT PRIMARY KEY,
    run_id TEXT NOT NULL,
    recorded_at TEXT NOT NULL,
    level TEXT NOT NULL,
    message TEXT NOT NULL,
    detail TEXT
);

CREATE INDEX IF NOT EXISTS idx_service_traces_run ON service_traces(run_id);
`

// Record is one archived trace row.
type Record struct {
	ID         string
	RunID      string
	RecordedAt time.Time
	Level      string
	Message    string
	Detail     string
}

// Store wraps one sqlite database. Each process run gets its own RunID so
// traces from different launches stay separable.
type Store struct {
	db    *sql.DB
	runID string
}

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, runID: uuid.NewString()}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// RunID identifies the current process run.
func (s *Store) RunID() string { return s.runID }

// Append archives one trace.
func (s *Store) Append(tr lifecycle.ServiceTrace) error {
	_, err := s.db.Exec(
		`INSERT INTO service_traces(id, run_id, recorded_at, level, message, detail) VALUES(?,?,?,?,?,?)`,
		uuid.NewString(),
		s.runID,
		time.Now().UTC().Format(time.RFC3339Nano),
		tr.Level,
		tr.Message,
		tr.Detail,
	)
	if err != nil {
		return fmt.Errorf("insert trace: %w", err)
	}
	return nil
}

// Sink adapts Append into the lifecycle manager's trace sink signature.
// Archive failures never disturb the lifecycle path.
func (s *Store) Sink() func(lifecycle.ServiceTrace) {
	return func(tr lifecycle.ServiceTrace) {
		_ = s.Append(tr)
	}
}

// Recent returns the newest traces for the current run, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, run_id, recorded_at, level, message, detail
		 FROM service_traces WHERE run_id = ?
		 ORDER BY recorded_at DESC LIMIT ?`,
		s.runID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query traces: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var recordedAt string
		if err := rows.Scan(&r.ID, &r.RunID, &recordedAt, &r.Level, &r.Message, &r.Detail); err != nil {
			return nil, fmt.Errorf("scan trace: %w", err)
		}
		r.RecordedAt, _ = time.Parse(time.RFC3339Nano, recordedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Prune removes rows from runs other than the current one, keeping the
// database from growing without bound.
func (s *Store) Prune() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM service_traces WHERE run_id <> ?`, s.runID)
	if err != nil {
		return 0, fmt.Errorf("prune traces: %w", err)
	}
	return res.RowsAffected()
}
