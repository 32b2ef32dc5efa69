package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/resort-points-editor/internal/application"
)

type resortService interface {
	ListResorts(ctx context.Context, ws *application.Workspace) ([]application.ResortInfo, error)
	GetResortInfo(ctx context.Context, ws *application.Workspace, resortID string) (application.ResortInfo, error)
	CreateResort(ctx context.Context, ws *application.Workspace, params application.CreateResortParams) (application.ResortInfo, error)
	CloneResort(ctx context.Context, ws *application.Workspace, resortID string) (application.ResortInfo, error)
	RenameResort(ctx context.Context, ws *application.Workspace, params application.RenameResortParams) error
	DeleteResort(ctx context.Context, ws *application.Workspace, resortID string) error
	SelectResort(ctx context.Context, ws *application.Workspace, resortID string) error
}

type ResortHandler struct {
	service   resortService
	responder responder
	logger    *slog.Logger
}

func NewResortHandler(service resortService, logger *slog.Logger) *ResortHandler {
	base := defaultLogger(logger)
	return &ResortHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ResortHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ResortHandler", operation, attrs...)
}

func (h *ResortHandler) workspace(w http.ResponseWriter, r *http.Request, operation string) (*application.Workspace, bool) {
	ws, ok := WorkspaceFromContext(r.Context())
	if !ok {
		h.log(r.Context(), operation, "error_kind", "unexpected").ErrorContext(r.Context(), "request reached handler without a workspace")
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, errMissingWorkspace)
		return nil, false
	}
	return ws, true
}

func (h *ResortHandler) resortID(w http.ResponseWriter, r *http.Request, operation string) (string, bool) {
	id, ok := ResortIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "missing resort id in request path")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResortID)
		return "", false
	}
	return id, true
}

// List returns every resort in the document ordered west to east by timezone.
func (h *ResortHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "List")
	if !ok {
		return
	}

	infos, err := h.service.ListResorts(r.Context(), ws)
	if err != nil {
		h.log(r.Context(), "List").ErrorContext(r.Context(), "resort listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, resortListResponse{Resorts: infos})
}

func (h *ResortHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Create")
	if !ok {
		return
	}

	var req resortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode resort request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "display_name", req.DisplayName)

	info, err := h.service.CreateResort(r.Context(), ws, application.CreateResortParams{
		DisplayName: req.DisplayName,
		Code:        req.Code,
		ResortName:  req.ResortName,
		Address:     req.Address,
		Timezone:    req.Timezone,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "resort creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("resort_id", info.ID).InfoContext(r.Context(), "resort created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, info)
}

func (h *ResortHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Get")
	if !ok {
		return
	}
	resortID, ok := h.resortID(w, r, "Get")
	if !ok {
		return
	}

	info, err := h.service.GetResortInfo(r.Context(), ws, resortID)
	if err != nil {
		h.log(r.Context(), "Get", "resort_id", resortID).ErrorContext(r.Context(), "resort lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, info)
}

// Rename updates a resort's display name. The ID never changes.
func (h *ResortHandler) Rename(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Rename")
	if !ok {
		return
	}
	resortID, ok := h.resortID(w, r, "Rename")
	if !ok {
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Rename", "resort_id", resortID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode rename request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Rename", "resort_id", resortID)

	if err := h.service.RenameResort(r.Context(), ws, application.RenameResortParams{
		ResortID:    resortID,
		DisplayName: req.DisplayName,
	}); err != nil {
		logger.ErrorContext(r.Context(), "resort rename failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "resort renamed")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ResortHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Delete")
	if !ok {
		return
	}
	resortID, ok := h.resortID(w, r, "Delete")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "Delete", "resort_id", resortID)

	if err := h.service.DeleteResort(r.Context(), ws, resortID); err != nil {
		logger.ErrorContext(r.Context(), "resort delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "resort deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Clone duplicates a resort under a derived ID and a " (Copy)" display name.
func (h *ResortHandler) Clone(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Clone")
	if !ok {
		return
	}
	resortID, ok := h.resortID(w, r, "Clone")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "Clone", "resort_id", resortID)

	info, err := h.service.CloneResort(r.Context(), ws, resortID)
	if err != nil {
		logger.ErrorContext(r.Context(), "resort clone failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("clone_id", info.ID).InfoContext(r.Context(), "resort cloned")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, info)
}

// Select makes a resort the editing target for the session, reconciling any
// staged edits on the previously selected resort first.
func (h *ResortHandler) Select(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Select")
	if !ok {
		return
	}
	resortID, ok := h.resortID(w, r, "Select")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "Select", "resort_id", resortID)

	if err := h.service.SelectResort(r.Context(), ws, resortID); err != nil {
		logger.ErrorContext(r.Context(), "resort selection failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "resort selected")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type resortRequest struct {
	DisplayName string `json:"display_name"`
	Code        string `json:"code"`
	ResortName  string `json:"resort_name"`
	Address     string `json:"address"`
	Timezone    string `json:"timezone"`
}

type renameRequest struct {
	DisplayName string `json:"display_name"`
}

type resortListResponse struct {
	Resorts []application.ResortInfo `json:"resorts"`
}
