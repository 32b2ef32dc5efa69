package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/resort-points-editor/internal/application"
	"github.com/example/resort-points-editor/internal/points"
)

var (
	errInvalidSeasonIndex = errors.New("invalid season index")
	errInvalidHolidayKey  = errors.New("invalid holiday key")
)

type workingService interface {
	WorkingResort(ctx context.Context, ws *application.Workspace) (*points.Resort, error)
	ListYears(ctx context.Context, ws *application.Workspace) ([]string, error)
	RoomTypes(ctx context.Context, ws *application.Workspace, year string) ([]string, error)
	AddSeason(ctx context.Context, ws *application.Workspace, params application.AddSeasonParams) error
	DeleteSeason(ctx context.Context, ws *application.Workspace, params application.DeleteSeasonParams) (bool, error)
	SetSeasonPeriods(ctx context.Context, ws *application.Workspace, params application.SetSeasonPeriodsParams) (application.SetPeriodsResult, error)
	SetSeasonPoints(ctx context.Context, ws *application.Workspace, params application.SetSeasonPointsParams) error
	SetHolidayPoints(ctx context.Context, ws *application.Workspace, params application.SetHolidayPointsParams) error
	AddRoomType(ctx context.Context, ws *application.Workspace, params application.AddRoomTypeParams) (int, error)
	AddHoliday(ctx context.Context, ws *application.Workspace, params application.AddHolidayParams) (int, error)
	DeleteHoliday(ctx context.Context, ws *application.Workspace, key string) (int, error)
}

// WorkingHandler serves the staged working copy of the selected resort. All
// mutations land in the working copy and reconcile into the document when the
// selection changes or the document is read whole.
type WorkingHandler struct {
	service   workingService
	responder responder
	logger    *slog.Logger
}

func NewWorkingHandler(service workingService, logger *slog.Logger) *WorkingHandler {
	base := defaultLogger(logger)
	return &WorkingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *WorkingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "WorkingHandler", operation, attrs...)
}

func (h *WorkingHandler) workspace(w http.ResponseWriter, r *http.Request, operation string) (*application.Workspace, bool) {
	ws, ok := WorkspaceFromContext(r.Context())
	if !ok {
		h.log(r.Context(), operation, "error_kind", "unexpected").ErrorContext(r.Context(), "request reached handler without a workspace")
		h.responder.writeError(r.Context(), w, http.StatusInternalServerError, errMissingWorkspace)
		return nil, false
	}
	return ws, true
}

// Resort returns the full working copy of the selected resort.
func (h *WorkingHandler) Resort(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Resort")
	if !ok {
		return
	}

	resort, err := h.service.WorkingResort(r.Context(), ws)
	if err != nil {
		h.log(r.Context(), "Resort").ErrorContext(r.Context(), "working resort fetch failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, resort)
}

// Years lists the years configured on the selected resort, falling back to
// the editor defaults for a resort with no data.
func (h *WorkingHandler) Years(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "Years")
	if !ok {
		return
	}

	years, err := h.service.ListYears(r.Context(), ws)
	if err != nil {
		h.log(r.Context(), "Years").ErrorContext(r.Context(), "year listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, yearsResponse{Years: years})
}

// ListRoomTypes lists the room types present in one year of the selected resort.
func (h *WorkingHandler) ListRoomTypes(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "ListRoomTypes")
	if !ok {
		return
	}

	year := strings.TrimSpace(r.URL.Query().Get("year"))
	rooms, err := h.service.RoomTypes(r.Context(), ws, year)
	if err != nil {
		h.log(r.Context(), "ListRoomTypes", "year", year).ErrorContext(r.Context(), "room type listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, roomTypesResponse{RoomTypes: rooms})
}

func (h *WorkingHandler) AddSeason(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "AddSeason")
	if !ok {
		return
	}

	var req addSeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "AddSeason", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode season request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "AddSeason", "year", req.Year, "name", req.Name)

	if err := h.service.AddSeason(r.Context(), ws, application.AddSeasonParams{
		Year: req.Year,
		Name: req.Name,
	}); err != nil {
		logger.ErrorContext(r.Context(), "season creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "season added")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, nil)
}

// DeleteSeason removes a season addressed by year and position via query
// parameters.
func (h *WorkingHandler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "DeleteSeason")
	if !ok {
		return
	}

	year := strings.TrimSpace(r.URL.Query().Get("year"))
	index, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("index")))
	if err != nil {
		h.log(r.Context(), "DeleteSeason", "year", year, "error_kind", "bad_request").ErrorContext(r.Context(), "unparseable season index", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSeasonIndex)
		return
	}

	logger := h.log(r.Context(), "DeleteSeason", "year", year, "index", index)

	removed, err := h.service.DeleteSeason(r.Context(), ws, application.DeleteSeasonParams{
		Year:  year,
		Index: index,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "season delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("removed", removed).InfoContext(r.Context(), "season delete processed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, deleteSeasonResponse{Removed: removed})
}

// SetPeriods replaces one season's date ranges. Rows that fail date parsing
// are dropped and counted in the response.
func (h *WorkingHandler) SetPeriods(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "SetPeriods")
	if !ok {
		return
	}

	var req setPeriodsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "SetPeriods", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode periods request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	periods := make([]points.Period, 0, len(req.Periods))
	for _, p := range req.Periods {
		periods = append(periods, points.Period{Start: p.Start, End: p.End})
	}

	logger := h.log(r.Context(), "SetPeriods", "year", req.Year, "index", req.Index, "periods", len(periods))

	result, err := h.service.SetSeasonPeriods(r.Context(), ws, application.SetSeasonPeriodsParams{
		Year:    req.Year,
		Index:   req.Index,
		Periods: periods,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "period update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("kept", len(result.Periods), "discarded", result.Discarded).InfoContext(r.Context(), "periods updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, setPeriodsResponse{
		Periods:   result.Periods,
		Discarded: result.Discarded,
	})
}

func (h *WorkingHandler) SetSeasonPoints(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "SetSeasonPoints")
	if !ok {
		return
	}

	var req seasonPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "SetSeasonPoints", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode season points request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "SetSeasonPoints", "year", req.Year, "season", req.Season, "category", req.Category, "all_years", req.AllYears)

	if err := h.service.SetSeasonPoints(r.Context(), ws, application.SetSeasonPointsParams{
		Year:            req.Year,
		SeasonName:      req.Season,
		Category:        req.Category,
		RoomPoints:      req.RoomPoints,
		ApplyToAllYears: req.AllYears,
	}); err != nil {
		logger.ErrorContext(r.Context(), "season points update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "season points updated")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *WorkingHandler) SetHolidayPoints(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "SetHolidayPoints")
	if !ok {
		return
	}

	var req holidayPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "SetHolidayPoints", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode holiday points request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "SetHolidayPoints", "year", req.Year, "holiday", req.Holiday, "all_years", req.AllYears)

	if err := h.service.SetHolidayPoints(r.Context(), ws, application.SetHolidayPointsParams{
		Year:            req.Year,
		HolidayKey:      req.Holiday,
		RoomPoints:      req.RoomPoints,
		ApplyToAllYears: req.AllYears,
	}); err != nil {
		logger.ErrorContext(r.Context(), "holiday points update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "holiday points updated")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// AddRoomType zero-fills a room type into every point table of the selected
// resort, or of every resort when all_resorts is set.
func (h *WorkingHandler) AddRoomType(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "AddRoomType")
	if !ok {
		return
	}

	var req addRoomTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "AddRoomType", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode room type request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "AddRoomType", "room_type", req.RoomType, "all_resorts", req.AllResorts)

	changed, err := h.service.AddRoomType(r.Context(), ws, application.AddRoomTypeParams{
		RoomType:   req.RoomType,
		AllResorts: req.AllResorts,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "room type addition failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("changed", changed).InfoContext(r.Context(), "room type added")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, addRoomTypeResponse{Changed: changed})
}

func (h *WorkingHandler) AddHoliday(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "AddHoliday")
	if !ok {
		return
	}

	var req addHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "AddHoliday", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode holiday request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "AddHoliday", "name", req.Name)

	added, err := h.service.AddHoliday(r.Context(), ws, application.AddHolidayParams{
		Name:            req.Name,
		GlobalReference: req.GlobalReference,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "holiday addition failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("added", added).InfoContext(r.Context(), "holiday addition processed")
	status := http.StatusCreated
	if added == 0 {
		status = http.StatusOK
	}
	h.responder.writeJSON(r.Context(), w, status, addHolidayResponse{Added: added})
}

// DeleteHoliday removes holidays matching the key across every year of the
// selected resort.
func (h *WorkingHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request, key string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ws, ok := h.workspace(w, r, "DeleteHoliday")
	if !ok {
		return
	}

	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		h.log(r.Context(), "DeleteHoliday", "error_kind", "bad_request").ErrorContext(r.Context(), "missing holiday key for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidHolidayKey)
		return
	}

	logger := h.log(r.Context(), "DeleteHoliday", "key", trimmed)

	removed, err := h.service.DeleteHoliday(r.Context(), ws, trimmed)
	if err != nil {
		logger.ErrorContext(r.Context(), "holiday delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("removed", removed).InfoContext(r.Context(), "holiday delete processed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, deleteHolidayResponse{Removed: removed})
}

type yearsResponse struct {
	Years []string `json:"years"`
}

type roomTypesResponse struct {
	RoomTypes []string `json:"room_types"`
}

type addSeasonRequest struct {
	Year string `json:"year"`
	Name string `json:"name"`
}

type deleteSeasonResponse struct {
	Removed bool `json:"removed"`
}

type periodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type setPeriodsRequest struct {
	Year    string      `json:"year"`
	Index   int         `json:"index"`
	Periods []periodDTO `json:"periods"`
}

type setPeriodsResponse struct {
	Periods   []points.Period `json:"periods"`
	Discarded int             `json:"discarded"`
}

type seasonPointsRequest struct {
	Year       string          `json:"year"`
	Season     string          `json:"season"`
	Category   string          `json:"category"`
	RoomPoints map[string]*int `json:"room_points"`
	AllYears   bool            `json:"all_years"`
}

type holidayPointsRequest struct {
	Year       string          `json:"year"`
	Holiday    string          `json:"holiday"`
	RoomPoints map[string]*int `json:"room_points"`
	AllYears   bool            `json:"all_years"`
}

type addRoomTypeRequest struct {
	RoomType   string `json:"room_type"`
	AllResorts bool   `json:"all_resorts"`
}

type addRoomTypeResponse struct {
	Changed int `json:"changed"`
}

type addHolidayRequest struct {
	Name            string `json:"name"`
	GlobalReference string `json:"global_reference"`
}

type addHolidayResponse struct {
	Added int `json:"added"`
}

type deleteHolidayResponse struct {
	Removed int `json:"removed"`
}
