package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/resort-points-editor/internal/persistence"
)

func newTestStore(t *testing.T) *DocumentStore {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "editor.db")
	pool, err := NewConnectionPool(DefaultConfig(dsn))
	if err != nil {
		t.Fatalf("NewConnectionPool failed: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	if err := pool.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return NewDocumentStore(pool)
}

func testRecord(name string, savedAt time.Time) persistence.DocumentRecord {
	return persistence.DocumentRecord{
		Name:    name,
		Payload: []byte(`{"schema_version":"2","resorts":[{"id":"alpha"}]}`),
		SavedAt: savedAt,
	}
}

func TestDocumentStore_SaveDocument(t *testing.T) {
	t.Parallel()

	t.Run("assigns revision one to a new snapshot", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		saved, err := store.SaveDocument(context.Background(), testRecord("spring", time.Now()))
		if err != nil {
			t.Fatalf("SaveDocument failed: %v", err)
		}
		if saved.Revision != 1 {
			t.Fatalf("expected revision 1, got %d", saved.Revision)
		}
	})

	t.Run("increments the revision on resave", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		ctx := context.Background()
		if _, err := store.SaveDocument(ctx, testRecord("spring", time.Now())); err != nil {
			t.Fatalf("SaveDocument failed: %v", err)
		}
		saved, err := store.SaveDocument(ctx, testRecord("spring", time.Now()))
		if err != nil {
			t.Fatalf("SaveDocument failed: %v", err)
		}
		if saved.Revision != 2 {
			t.Fatalf("expected revision 2, got %d", saved.Revision)
		}
	})

	t.Run("rejects an empty name or payload", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		ctx := context.Background()
		if _, err := store.SaveDocument(ctx, persistence.DocumentRecord{Payload: []byte("x")}); !errors.Is(err, persistence.ErrConstraintViolation) {
			t.Fatalf("expected ErrConstraintViolation, got %v", err)
		}
		if _, err := store.SaveDocument(ctx, persistence.DocumentRecord{Name: "spring"}); !errors.Is(err, persistence.ErrConstraintViolation) {
			t.Fatalf("expected ErrConstraintViolation, got %v", err)
		}
	})
}

func TestDocumentStore_GetDocument(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the payload and timestamp", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		ctx := context.Background()
		savedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		if _, err := store.SaveDocument(ctx, testRecord("spring", savedAt)); err != nil {
			t.Fatalf("SaveDocument failed: %v", err)
		}

		fetched, err := store.GetDocument(ctx, "spring")
		if err != nil {
			t.Fatalf("GetDocument failed: %v", err)
		}
		if string(fetched.Payload) != string(testRecord("spring", savedAt).Payload) {
			t.Fatalf("payload mismatch: %s", fetched.Payload)
		}
		if !fetched.SavedAt.Equal(savedAt) {
			t.Fatalf("expected saved_at %v, got %v", savedAt, fetched.SavedAt)
		}
	})

	t.Run("unknown name returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		if _, err := store.GetDocument(context.Background(), "missing"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDocumentStore_ListDocuments(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, err := store.SaveDocument(ctx, testRecord("older", base)); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	if _, err := store.SaveDocument(ctx, testRecord("newer", base.Add(time.Hour))); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	records, err := store.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "newer" {
		t.Fatalf("expected newest first, got %s", records[0].Name)
	}
}

func TestDocumentStore_DeleteDocument(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.SaveDocument(ctx, testRecord("spring", time.Now())); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	if err := store.DeleteDocument(ctx, "spring"); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if err := store.DeleteDocument(ctx, "spring"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	dsn := filepath.Join(t.TempDir(), "editor.db")
	pool, err := NewConnectionPool(DefaultConfig(dsn))
	if err != nil {
		t.Fatalf("NewConnectionPool failed: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	if err := pool.Migrate(ctx); err != nil {
		t.Fatalf("first Migrate failed: %v", err)
	}
	if err := pool.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}
