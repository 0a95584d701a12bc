package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vitos/crypto_market_radar/internal/domain"
)

// SQLiteStore archives completed daily runs. The JSON snapshot files stay
// the machine-readable artifact; this archive exists for operator
// inspection of run history.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			vs_currency TEXT NOT NULL,
			universe_size INTEGER NOT NULL,
			up INTEGER NOT NULL,
			down INTEGER NOT NULL,
			gainers TEXT NOT NULL,
			vol_alt TEXT NOT NULL,
			trend TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_date ON runs(date);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to exec query %s: %w", q, err)
		}
	}
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *domain.RunRecord) error {
	query := `INSERT INTO runs (id, date, vs_currency, universe_size, up, down, gainers, vol_alt, trend, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.Date, run.VsCurrency, run.UniverseSize, run.Up, run.Down,
		run.Gainers, run.VolAlt, run.Trend, run.CreatedAt)
	return err
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*domain.RunRecord, error) {
	query := `SELECT id, date, vs_currency, universe_size, up, down, gainers, vol_alt, trend, created_at
			  FROM runs ORDER BY created_at DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.RunRecord
	for rows.Next() {
		var r domain.RunRecord
		if err := rows.Scan(&r.ID, &r.Date, &r.VsCurrency, &r.UniverseSize, &r.Up, &r.Down,
			&r.Gainers, &r.VolAlt, &r.Trend, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
