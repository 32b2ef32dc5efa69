package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/resort-points-editor/internal/persistence"
	"github.com/example/resort-points-editor/internal/points"
)

// DocumentService handles whole-document operations: loading, serialization,
// verification, merging, and named snapshots in the document store.
type DocumentService struct {
	store  persistence.DocumentStore
	now    func() time.Time
	logger *slog.Logger
}

// NewDocumentService constructs a document service. The store may be nil
// when no persistence is configured; snapshot operations then fail cleanly.
func NewDocumentService(store persistence.DocumentStore, now func() time.Time) *DocumentService {
	return NewDocumentServiceWithLogger(store, now, nil)
}

// NewDocumentServiceWithLogger constructs a document service with a specified logger.
func NewDocumentServiceWithLogger(store persistence.DocumentStore, now func() time.Time, logger *slog.Logger) *DocumentService {
	if now == nil {
		now = time.Now
	}
	return &DocumentService{store: store, now: now, logger: defaultLogger(logger)}
}

func (s *DocumentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "DocumentService", operation, attrs...)
}

// Load replaces the workspace content with a parsed payload. A payload that
// fails parsing or validation leaves the workspace untouched.
func (s *DocumentService) Load(ctx context.Context, ws *Workspace, payload []byte) (err error) {
	if s == nil {
		return fmt.Errorf("DocumentService is nil")
	}

	logger := s.loggerWith(ctx, "Load", "payload_bytes", len(payload))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to load document", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "document loaded")
	}()

	err = ws.Load(payload)
	return
}

// NewDocument resets the workspace to an empty document, discarding any
// loaded state.
func (s *DocumentService) NewDocument(ctx context.Context, ws *Workspace) error {
	if s == nil {
		return fmt.Errorf("DocumentService is nil")
	}
	ws.LoadDocument(points.NewDocument())
	s.loggerWith(ctx, "NewDocument").InfoContext(ctx, "blank document initialized")
	return nil
}

// Serialize renders the workspace's document in canonical byte form, staged
// edits included.
func (s *DocumentService) Serialize(ctx context.Context, ws *Workspace) (payload []byte, err error) {
	if s == nil {
		err = fmt.Errorf("DocumentService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Serialize")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to serialize document", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	payload, err = ws.Serialize()
	return
}

// Verify reports whether the payload matches the workspace's current
// document state byte for byte after canonicalization.
func (s *DocumentService) Verify(ctx context.Context, ws *Workspace, payload []byte) (result VerifyResult, err error) {
	if s == nil {
		err = fmt.Errorf("DocumentService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Verify", "payload_bytes", len(payload))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to verify document", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("match", result.Match).InfoContext(ctx, "document verified")
	}()

	var match bool
	match, err = ws.Verify(payload)
	if err != nil {
		return
	}
	result = VerifyResult{Match: match}
	return
}

// Merge imports resorts from another document payload, skipping IDs that
// already exist. An empty resortIDs list means every resort in the payload.
func (s *DocumentService) Merge(ctx context.Context, ws *Workspace, payload []byte, resortIDs []string) (result MergeResult, err error) {
	if s == nil {
		err = fmt.Errorf("DocumentService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Merge", "payload_bytes", len(payload), "resort_ids", len(resortIDs))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to merge document", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("added", result.Added, "skipped", len(result.Skipped)).InfoContext(ctx, "documents merged")
	}()

	result, err = ws.Merge(payload, resortIDs)
	return
}

// Save persists the workspace's document under a name. Saving over an
// existing name replaces the payload and bumps the revision.
func (s *DocumentService) Save(ctx context.Context, ws *Workspace, params SaveDocumentParams) (saved SavedDocument, err error) {
	if s == nil {
		err = fmt.Errorf("DocumentService is nil")
		return
	}
	if s.store == nil {
		err = fmt.Errorf("document store not configured")
		return
	}

	name := strings.TrimSpace(params.Name)
	logger := s.loggerWith(ctx, "Save", "name", name)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to save document", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("revision", saved.Revision).InfoContext(ctx, "document saved")
	}()

	if name == "" {
		vErr := &ValidationError{}
		vErr.add("name", "snapshot name is required")
		err = vErr
		return
	}

	var payload []byte
	payload, err = ws.Serialize()
	if err != nil {
		return
	}

	var record persistence.DocumentRecord
	record, err = s.store.SaveDocument(ctx, persistence.DocumentRecord{
		Name:    name,
		Payload: payload,
		SavedAt: s.now(),
	})
	if err != nil {
		err = mapStoreError(err)
		return
	}
	saved = savedDocument(record)
	return
}

// Open loads a named snapshot from the store into the workspace.
func (s *DocumentService) Open(ctx context.Context, ws *Workspace, name string) (saved SavedDocument, err error) {
	if s == nil {
		err = fmt.Errorf("DocumentService is nil")
		return
	}
	if s.store == nil {
		err = fmt.Errorf("document store not configured")
		return
	}

	name = strings.TrimSpace(name)
	logger := s.loggerWith(ctx, "Open", "name", name)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to open document", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("revision", saved.Revision).InfoContext(ctx, "document opened")
	}()

	var record persistence.DocumentRecord
	record, err = s.store.GetDocument(ctx, name)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	if err = ws.Load(record.Payload); err != nil {
		return
	}
	saved = savedDocument(record)
	return
}

// ListSaved returns every stored snapshot, newest first.
func (s *DocumentService) ListSaved(ctx context.Context) (saved []SavedDocument, err error) {
	if s == nil {
		err = fmt.Errorf("DocumentService is nil")
		return
	}
	if s.store == nil {
		err = fmt.Errorf("document store not configured")
		return
	}

	logger := s.loggerWith(ctx, "ListSaved")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list saved documents", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	var records []persistence.DocumentRecord
	records, err = s.store.ListDocuments(ctx)
	if err != nil {
		err = mapStoreError(err)
		return
	}
	saved = make([]SavedDocument, 0, len(records))
	for _, record := range records {
		saved = append(saved, savedDocument(record))
	}
	return
}

// DeleteSaved removes a stored snapshot by name.
func (s *DocumentService) DeleteSaved(ctx context.Context, name string) (err error) {
	if s == nil {
		return fmt.Errorf("DocumentService is nil")
	}
	if s.store == nil {
		return fmt.Errorf("document store not configured")
	}

	logger := s.loggerWith(ctx, "DeleteSaved", "name", name)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete saved document", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "saved document deleted")
	}()

	if err = s.store.DeleteDocument(ctx, strings.TrimSpace(name)); err != nil {
		err = mapStoreError(err)
	}
	return
}

func savedDocument(record persistence.DocumentRecord) SavedDocument {
	return SavedDocument{Name: record.Name, Revision: record.Revision, SavedAt: record.SavedAt}
}

func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	default:
		return err
	}
}
