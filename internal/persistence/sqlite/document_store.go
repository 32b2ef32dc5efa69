package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/resort-points-editor/internal/persistence"
)

// DocumentStore implements persistence.DocumentStore using SQLite
type DocumentStore struct {
	pool   *ConnectionPool
	helper *QueryHelper
}

// NewDocumentStore creates a new SQLite document store
func NewDocumentStore(pool *ConnectionPool) *DocumentStore {
	return &DocumentStore{
		pool:   pool,
		helper: NewQueryHelper(pool),
	}
}

// SaveDocument inserts a snapshot or replaces an existing one under the same
// name, incrementing its revision.
func (s *DocumentStore) SaveDocument(ctx context.Context, record persistence.DocumentRecord) (persistence.DocumentRecord, error) {
	if record.Name == "" {
		return persistence.DocumentRecord{}, persistence.ErrConstraintViolation
	}
	if len(record.Payload) == 0 {
		return persistence.DocumentRecord{}, persistence.ErrConstraintViolation
	}
	if record.SavedAt.IsZero() {
		record.SavedAt = time.Now().UTC()
	}

	err := s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var revision int
		err := s.helper.QueryRowTx(tx, "SELECT revision FROM documents WHERE name = ?", record.Name).Scan(&revision)
		switch {
		case err == sql.ErrNoRows:
			record.Revision = 1
			_, err = s.helper.ExecTx(tx, `
				INSERT INTO documents (name, revision, payload, saved_at)
				VALUES (?, ?, ?, ?)
			`,
				record.Name,
				record.Revision,
				record.Payload,
				record.SavedAt.UTC().Format(time.RFC3339),
			)
			return mapDocumentError(err)
		case err != nil:
			return mapDocumentError(err)
		}

		record.Revision = revision + 1
		_, err = s.helper.ExecTx(tx, `
			UPDATE documents
			SET revision = ?, payload = ?, saved_at = ?
			WHERE name = ?
		`,
			record.Revision,
			record.Payload,
			record.SavedAt.UTC().Format(time.RFC3339),
			record.Name,
		)
		return mapDocumentError(err)
	})
	if err != nil {
		return persistence.DocumentRecord{}, err
	}
	return record, nil
}

// GetDocument retrieves a snapshot by name
func (s *DocumentStore) GetDocument(ctx context.Context, name string) (persistence.DocumentRecord, error) {
	if name == "" {
		return persistence.DocumentRecord{}, persistence.ErrNotFound
	}

	query := `
		SELECT name, revision, payload, saved_at
		FROM documents
		WHERE name = ?
	`

	var record persistence.DocumentRecord
	var savedAtStr string

	err := s.helper.QueryRow(ctx, query, name).Scan(
		&record.Name,
		&record.Revision,
		&record.Payload,
		&savedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.DocumentRecord{}, persistence.ErrNotFound
		}
		return persistence.DocumentRecord{}, mapDocumentError(err)
	}

	if record.SavedAt, err = time.Parse(time.RFC3339, savedAtStr); err != nil {
		return persistence.DocumentRecord{}, fmt.Errorf("failed to parse saved_at: %w", err)
	}

	return record, nil
}

// ListDocuments returns all snapshots ordered most recently saved first
func (s *DocumentStore) ListDocuments(ctx context.Context) ([]persistence.DocumentRecord, error) {
	query := `
		SELECT name, revision, payload, saved_at
		FROM documents
		ORDER BY saved_at DESC, name ASC
	`

	rows, err := s.helper.Query(ctx, query)
	if err != nil {
		return nil, mapDocumentError(err)
	}
	defer rows.Close()

	var records []persistence.DocumentRecord

	for rows.Next() {
		var record persistence.DocumentRecord
		var savedAtStr string

		if err := rows.Scan(&record.Name, &record.Revision, &record.Payload, &savedAtStr); err != nil {
			return nil, mapDocumentError(err)
		}
		if record.SavedAt, err = time.Parse(time.RFC3339, savedAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse saved_at: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, mapDocumentError(err)
	}

	return records, nil
}

// DeleteDocument removes a snapshot by name
func (s *DocumentStore) DeleteDocument(ctx context.Context, name string) error {
	if name == "" {
		return persistence.ErrNotFound
	}

	result, err := s.helper.Exec(ctx, "DELETE FROM documents WHERE name = ?", name)
	if err != nil {
		return mapDocumentError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

// mapDocumentError maps SQLite errors to persistence errors
func mapDocumentError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if containsAny(errStr, []string{"UNIQUE constraint failed", "PRIMARY KEY"}) {
		return persistence.ErrDuplicate
	}
	if containsAny(errStr, []string{"CHECK constraint failed", "NOT NULL constraint failed"}) {
		return persistence.ErrConstraintViolation
	}

	return err
}
