// Package storage provides SQLite persistence for per-invocation usage
// history.
//
// Information Hiding:
// - SQLite connection management hidden behind a struct
// - Schema details encapsulated
// - Thread-safe via sql.DB's built-in connection pooling

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ngerold/shellsage/llm"
)

// Invocation is one completed chat call's accounting record.
type Invocation struct {
	ID        string
	Timestamp time.Time
	Provider  string
	Model     string
	Usage     llm.Usage
	Cost      float64 // 0 when the model has no price table entry
}

// UsageStore persists usage history in a SQLite database file.
type UsageStore struct {
	db *sql.DB
}

// Open opens or creates a usage database at the given path, creating parent
// directories if they don't exist.
func Open(path string) (*UsageStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store := &UsageStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// OpenInMemory creates an in-memory store (useful for testing).
func OpenInMemory() (*UsageStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}

	store := &UsageStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *UsageStore) Close() error {
	return s.db.Close()
}

func (s *UsageStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS invocations (
			id TEXT PRIMARY KEY,
			ts TEXT NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			input_tokens INTEGER NOT NULL,
			output_tokens INTEGER NOT NULL,
			cache_write_tokens INTEGER NOT NULL,
			cache_read_tokens INTEGER NOT NULL,
			cost REAL NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_invocations_ts
		ON invocations(ts DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one invocation's usage. When the caller leaves ID or
// Timestamp zero they are filled in here.
func (s *UsageStore) Record(ctx context.Context, inv Invocation) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Timestamp.IsZero() {
		inv.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invocations
			(id, ts, provider, model, input_tokens, output_tokens, cache_write_tokens, cache_read_tokens, cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.Timestamp.Format(time.RFC3339),
		inv.Provider,
		inv.Model,
		inv.Usage.InputTokens,
		inv.Usage.OutputTokens,
		inv.Usage.CacheWriteTokens,
		inv.Usage.CacheReadTokens,
		inv.Cost,
	)
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// Recent returns up to limit invocations, newest first.
func (s *UsageStore) Recent(ctx context.Context, limit int) ([]Invocation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, provider, model, input_tokens, output_tokens, cache_write_tokens, cache_read_tokens, cost
		FROM invocations
		ORDER BY ts DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage: %w", err)
	}
	defer rows.Close()

	var result []Invocation
	for rows.Next() {
		var inv Invocation
		var ts string
		if err := rows.Scan(
			&inv.ID, &ts, &inv.Provider, &inv.Model,
			&inv.Usage.InputTokens, &inv.Usage.OutputTokens,
			&inv.Usage.CacheWriteTokens, &inv.Usage.CacheReadTokens,
			&inv.Cost,
		); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		inv.Timestamp, _ = time.Parse(time.RFC3339, ts)
		result = append(result, inv)
	}
	return result, rows.Err()
}

// Totals returns the field-wise sum of all recorded usage and the total
// estimated cost.
func (s *UsageStore) Totals(ctx context.Context) (llm.Usage, float64, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(SUM(cache_write_tokens), 0),
			COALESCE(SUM(cache_read_tokens), 0),
			COALESCE(SUM(cost), 0)
		FROM invocations`)

	var total llm.Usage
	var cost float64
	if err := row.Scan(
		&total.InputTokens, &total.OutputTokens,
		&total.CacheWriteTokens, &total.CacheReadTokens,
		&cost,
	); err != nil {
		return llm.Usage{}, 0, fmt.Errorf("failed to sum usage: %w", err)
	}
	return total, cost, nil
}

// DefaultPath returns the usage database location under the user config dir.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, "usage.db")
}
