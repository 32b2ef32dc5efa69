package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/resort-points-editor/internal/aggregate"
	"github.com/example/resort-points-editor/internal/application"
)

type summaryService interface {
	Summarize(ctx context.Context, ws *application.Workspace, resortID, year string) (aggregate.Summary, error)
}

type SummaryHandler struct {
	service   summaryService
	responder responder
	logger    *slog.Logger
}

func NewSummaryHandler(service summaryService, logger *slog.Logger) *SummaryHandler {
	base := defaultLogger(logger)
	return &SummaryHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *SummaryHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "SummaryHandler", operation, attrs...)
}

// Get computes the weekly point summary for one resort. The reference year
// comes from the `year` query parameter and falls back to the earliest year
// with data when absent.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := WorkspaceFromContext(r.Context())
	if !ok {
		h.log(r.Context(), "Get", "error_kind", "unexpected").ErrorContext(r.Context(), "request reached handler without a workspace")
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, errMissingWorkspace)
		return
	}

	resortID, ok := ResortIDFromContext(r.Context())
	if !ok || strings.TrimSpace(resortID) == "" {
		h.log(r.Context(), "Get", "error_kind", "bad_request").ErrorContext(r.Context(), "missing resort id in request path")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidResortID)
		return
	}

	year := strings.TrimSpace(r.URL.Query().Get("year"))
	logger := h.log(r.Context(), "Get", "resort_id", resortID, "year", year)

	summary, err := h.service.Summarize(r.Context(), ws, resortID, year)
	if err != nil {
		logger.ErrorContext(r.Context(), "summary computation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, summary)
}
