// Package labels persists counterparty labels in a local SQLite database.
// It is the only durable, user-authored state in the application.
package labels

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mjzilver/BankOverview/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the label database at dbPath and brings
// its schema up to date. Existing records are never disturbed.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create label db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open label database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping label database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Upsert stores the label and business flag for a counterparty, replacing
// any previous record for the same exact name. Applying the same values
// twice leaves the stored state unchanged.
func (s *Store) Upsert(ctx context.Context, counterparty, label string, isBusiness bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO labels (counterparty, label, is_business)
		VALUES (?, ?, ?)
		ON CONFLICT(counterparty) DO UPDATE SET
			label = excluded.label,
			is_business = excluded.is_business
	`, counterparty, label, isBusiness)
	if err != nil {
		return fmt.Errorf("upsert label for %q: %w", counterparty, err)
	}

	slog.InfoContext(ctx, "Label saved",
		"counterparty", counterparty,
		"label", label,
		"is_business", isBusiness)
	return nil
}

// GetAll returns every label record, ordered by counterparty for
// deterministic output.
func (s *Store) GetAll(ctx context.Context) ([]core.LabelRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT counterparty, label, is_business
		FROM labels
		ORDER BY counterparty
	`)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	defer rows.Close()

	var records []core.LabelRecord
	for rows.Next() {
		var r core.LabelRecord
		if err := rows.Scan(&r.Counterparty, &r.Label, &r.IsBusiness); err != nil {
			return nil, fmt.Errorf("scan label row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labels: %w", err)
	}
	return records, nil
}
