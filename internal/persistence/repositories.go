package persistence

import "context"

// DocumentStore exposes CRUD operations for named document snapshots.
type DocumentStore interface {
	SaveDocument(ctx context.Context, record DocumentRecord) (DocumentRecord, error)
	GetDocument(ctx context.Context, name string) (DocumentRecord, error)
	ListDocuments(ctx context.Context) ([]DocumentRecord, error)
	DeleteDocument(ctx context.Context, name string) error
}
