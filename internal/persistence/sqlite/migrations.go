package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// migration is one versioned schema change applied at startup.
type migration struct {
	Version string
	SQL     string
}

// Schema migrations in apply order. Versions are recorded in
// schema_migrations and never re-run.
var migrations = []migration{
	{
		Version: "0001_create_documents",
		SQL: `
			CREATE TABLE IF NOT EXISTS documents (
				name TEXT PRIMARY KEY,
				revision INTEGER NOT NULL CHECK (revision > 0),
				payload BLOB NOT NULL,
				saved_at TEXT NOT NULL
			);
		`,
	},
	{
		Version: "0002_index_documents_saved_at",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_documents_saved_at
				ON documents (saved_at DESC);
		`,
	},
}

// Migrate creates the version tracking table and applies every pending
// migration inside its own transaction.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	if err := cp.initializeVersionTable(ctx); err != nil {
		return err
	}
	for _, m := range migrations {
		applied, err := cp.isVersionApplied(ctx, m.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		started := time.Now()
		if err := cp.executeMigration(ctx, m); err != nil {
			return err
		}
		if err := cp.recordMigration(ctx, m.Version, time.Since(started)); err != nil {
			return err
		}
	}
	return nil
}

func (cp *ConnectionPool) initializeVersionTable(ctx context.Context) error {
	createTableSQL := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
			execution_time_ms INTEGER
		);
	`
	if _, err := cp.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

func (cp *ConnectionPool) executeMigration(ctx context.Context, m migration) error {
	return cp.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range strings.Split(m.SQL, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %s failed: %w", m.Version, err)
			}
		}
		return nil
	})
}

func (cp *ConnectionPool) recordMigration(ctx context.Context, version string, executionTime time.Duration) error {
	insertSQL := `
		INSERT INTO schema_migrations (version, applied_at, execution_time_ms)
		VALUES (?, ?, ?)
	`
	appliedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := cp.db.ExecContext(ctx, insertSQL, version, appliedAt, executionTime.Milliseconds()); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", version, err)
	}
	return nil
}

func (cp *ConnectionPool) isVersionApplied(ctx context.Context, version string) (bool, error) {
	querySQL := `SELECT 1 FROM schema_migrations WHERE version = ? LIMIT 1`

	var exists int
	err := cp.db.QueryRowContext(ctx, querySQL, version).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return exists == 1, nil
}
