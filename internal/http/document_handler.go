package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/resort-points-editor/internal/application"
)

type documentService interface {
	Load(ctx context.Context, ws *application.Workspace, payload []byte) error
	NewDocument(ctx context.Context, ws *application.Workspace) error
	Serialize(ctx context.Context, ws *application.Workspace) ([]byte, error)
	Verify(ctx context.Context, ws *application.Workspace, payload []byte) (application.VerifyResult, error)
	Merge(ctx context.Context, ws *application.Workspace, payload []byte, resortIDs []string) (application.MergeResult, error)
	Save(ctx context.Context, ws *application.Workspace, params application.SaveDocumentParams) (application.SavedDocument, error)
	Open(ctx context.Context, ws *application.Workspace, name string) (application.SavedDocument, error)
	ListSaved(ctx context.Context) ([]application.SavedDocument, error)
	DeleteSaved(ctx context.Context, name string) error
}

type DocumentHandler struct {
	service   documentService
	responder responder
	logger    *slog.Logger
}

func NewDocumentHandler(service documentService, logger *slog.Logger) *DocumentHandler {
	base := defaultLogger(logger)
	return &DocumentHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *DocumentHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "DocumentHandler", operation, attrs...)
}

func (h *DocumentHandler) workspace(w http.ResponseWriter, r *http.Request, operation string) (*application.Workspace, bool) {
	ws, ok := WorkspaceFromContext(r.Context())
	if !ok {
		h.log(r.Context(), operation, "error_kind", "unexpected").ErrorContext(r.Context(), "request reached handler without a workspace")
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, errMissingWorkspace)
		return nil, false
	}
	return ws, true
}

// Load replaces the session's document with the posted payload.
func (h *DocumentHandler) Load(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Load")
	if !ok {
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.log(r.Context(), "Load", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to read document payload", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Load", "payload_bytes", len(payload))

	if err := h.service.Load(r.Context(), ws, payload); err != nil {
		logger.ErrorContext(r.Context(), "document load failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "document loaded")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// New resets the session to a blank document.
func (h *DocumentHandler) New(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "New")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "New")

	if err := h.service.NewDocument(r.Context(), ws); err != nil {
		logger.ErrorContext(r.Context(), "blank document initialization failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "blank document initialized")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Current returns the canonical serialization of the session's document,
// staged edits included.
func (h *DocumentHandler) Current(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Current")
	if !ok {
		return
	}

	payload, err := h.service.Serialize(r.Context(), ws)
	if err != nil {
		h.log(r.Context(), "Current").ErrorContext(r.Context(), "document serialization failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeDocument(r.Context(), w, payload)
}

// Verify reports whether the posted payload matches the session's document
// byte for byte.
func (h *DocumentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Verify")
	if !ok {
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.log(r.Context(), "Verify", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to read verify payload", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Verify", "payload_bytes", len(payload))

	result, err := h.service.Verify(r.Context(), ws, payload)
	if err != nil {
		logger.ErrorContext(r.Context(), "document verification failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("match", result.Match).InfoContext(r.Context(), "document verified")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, verifyResponse{Match: result.Match})
}

// Merge imports resorts from the posted payload, skipping IDs that already
// exist. A resort_ids query parameter (comma-separated) restricts the import
// to the listed IDs.
func (h *DocumentHandler) Merge(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Merge")
	if !ok {
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.log(r.Context(), "Merge", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to read merge payload", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	var resortIDs []string
	for _, id := range strings.Split(r.URL.Query().Get("resort_ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			resortIDs = append(resortIDs, id)
		}
	}

	logger := h.log(r.Context(), "Merge", "payload_bytes", len(payload), "resort_ids", len(resortIDs))

	result, err := h.service.Merge(r.Context(), ws, payload, resortIDs)
	if err != nil {
		logger.ErrorContext(r.Context(), "document merge failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("added", result.Added, "skipped", len(result.Skipped)).InfoContext(r.Context(), "documents merged")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, mergeResponse{
		Added:   result.Added,
		Skipped: result.Skipped,
	})
}

// Save persists the session's document under a name in the document store.
func (h *DocumentHandler) Save(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Save")
	if !ok {
		return
	}

	var req documentNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Save", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode save request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Save", "name", req.Name)

	saved, err := h.service.Save(r.Context(), ws, application.SaveDocumentParams{Name: req.Name})
	if err != nil {
		logger.ErrorContext(r.Context(), "document save failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("revision", saved.Revision).InfoContext(r.Context(), "document saved")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, saved)
}

// Open loads a named snapshot from the document store into the session.
func (h *DocumentHandler) Open(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Open")
	if !ok {
		return
	}

	var req documentNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Open", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode open request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Open", "name", req.Name)

	saved, err := h.service.Open(r.Context(), ws, req.Name)
	if err != nil {
		logger.ErrorContext(r.Context(), "document open failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("revision", saved.Revision).InfoContext(r.Context(), "document opened")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, saved)
}

// ListSaved returns every named snapshot in the document store.
func (h *DocumentHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	saved, err := h.service.ListSaved(r.Context())
	if err != nil {
		h.log(r.Context(), "ListSaved").ErrorContext(r.Context(), "saved document listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, savedListResponse{Documents: saved})
}

// DeleteSaved removes a named snapshot from the document store.
func (h *DocumentHandler) DeleteSaved(w http.ResponseWriter, r *http.Request, name string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		h.log(r.Context(), "DeleteSaved", "error_kind", "bad_request").ErrorContext(r.Context(), "missing document name for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDocumentName)
		return
	}

	logger := h.log(r.Context(), "DeleteSaved", "name", trimmed)

	if err := h.service.DeleteSaved(r.Context(), trimmed); err != nil {
		logger.ErrorContext(r.Context(), "saved document delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "saved document deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type documentNameRequest struct {
	Name string `json:"name"`
}

type verifyResponse struct {
	Match bool `json:"match"`
}

type mergeResponse struct {
	Added   int      `json:"added"`
	Skipped []string `json:"skipped"`
}

type savedListResponse struct {
	Documents []application.SavedDocument `json:"documents"`
}
