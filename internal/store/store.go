// Package store persists submitted calculator inputs. Write-only: the core
// never reads a submission back.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/joelkehle/cvr-benchmark/internal/benchmark"
	"github.com/joelkehle/cvr-benchmark/internal/telemetry"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_responses (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	monthly_traffic     INTEGER NOT NULL,
	monthly_conversions INTEGER NOT NULL,
	conversion_type     TEXT NOT NULL,
	conversion_value    REAL NOT NULL DEFAULT 0,
	created_at          TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// Store is the SQLite-backed submission log.
type Store struct {
	db *sqlx.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes one submission and returns the generated id. Fire-and-forget
// from the caller's perspective: a failure here never affects metrics
// computation or export, which have already completed on their own inputs.
func (s *Store) Save(ctx context.Context, in benchmark.Input) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO user_responses (monthly_traffic, monthly_conversions, conversion_type, conversion_value)
		 VALUES (?, ?, ?, ?)`,
		in.MonthlyTraffic, in.MonthlyConversions, string(in.ConversionType), in.ConversionValue,
	)
	if err != nil {
		return 0, fmt.Errorf("insert response: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read generated id: %w", err)
	}
	telemetry.ResponsesSaved.Inc()
	return id, nil
}
