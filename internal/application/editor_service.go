package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/resort-points-editor/internal/points"
)

// Fallbacks shown when a resort record is missing contact details.
const (
	fallbackTimezone = "Unknown"
	fallbackAddress  = "Address not available"
)

// EditorService orchestrates validation and staged mutation of resort
// configurations. It holds no document state itself; every operation acts on
// the workspace owned by the calling session.
type EditorService struct {
	defaultYears []string
	logger       *slog.Logger
}

// NewEditorService constructs an editor service. defaultYears is the year
// range offered when a document names no years of its own.
func NewEditorService(defaultYears []string) *EditorService {
	return NewEditorServiceWithLogger(defaultYears, nil)
}

// NewEditorServiceWithLogger constructs an editor service with a specified logger.
func NewEditorServiceWithLogger(defaultYears []string, logger *slog.Logger) *EditorService {
	if len(defaultYears) == 0 {
		defaultYears = []string{"2025", "2026"}
	}
	return &EditorService{
		defaultYears: append([]string(nil), defaultYears...),
		logger:       defaultLogger(logger),
	}
}

func (s *EditorService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EditorService", operation, attrs...)
}

// ListResorts returns the listing view of every resort ordered west to east
// by timezone, with display fallbacks applied.
func (s *EditorService) ListResorts(ctx context.Context, ws *Workspace) (infos []ResortInfo, err error) {
	if s == nil {
		err = fmt.Errorf("EditorService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListResorts")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list resorts", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	var doc *points.Document
	doc, err = ws.Snapshot()
	if err != nil {
		return
	}

	infos = make([]ResortInfo, 0, len(doc.Resorts))
	for _, resort := range points.SortResortsWestToEast(doc.Resorts) {
		if resort == nil {
			continue
		}
		infos = append(infos, resortInfo(resort))
	}
	return
}

// GetResortInfo returns the listing view of one resort.
func (s *EditorService) GetResortInfo(ctx context.Context, ws *Workspace, resortID string) (info ResortInfo, err error) {
	if s == nil {
		err = fmt.Errorf("EditorService is nil")
		return
	}

	var doc *points.Document
	doc, err = ws.Snapshot()
	if err != nil {
		return
	}

	resort := doc.FindResort(resortID)
	if resort == nil {
		err = fmt.Errorf("%w: resort %s", ErrNotFound, resortID)
		return
	}
	info = resortInfo(resort)
	return
}

// CreateResort validates input and appends a new resort to the document.
func (s *EditorService) CreateResort(ctx context.Context, ws *Workspace, params CreateResortParams) (info ResortInfo, err error) {
	if s == nil {
		err = fmt.Errorf("EditorService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateResort", "display_name", params.DisplayName)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create resort", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("resort_id", info.ID).InfoContext(ctx, "resort created")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(params.DisplayName) == "" {
		vErr.add("display_name", "display name is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var resort *points.Resort
	resort, err = ws.CreateResort(params)
	if err != nil {
		return
	}
	info = resortInfo(resort)
	return
}

// CloneResort duplicates a resort under a fresh ID.
func (s *EditorService) CloneResort(ctx context.Context, ws *Workspace, resortID string) (info ResortInfo, err error) {
	if s == nil {
		err = fmt.Errorf("EditorService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CloneResort", "resort_id", resortID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to clone resort", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("clone_id", info.ID).InfoContext(ctx, "resort cloned")
	}()

	var clone *points.Resort
	clone, err = ws.CloneResort(resortID)
	if err != nil {
		return
	}
	info = resortInfo(clone)
	return
}

// RenameResort changes a resort's display name.
func (s *EditorService) RenameResort(ctx context.Context, ws *Workspace, params RenameResortParams) (err error) {
	if s == nil {
		return fmt.Errorf("EditorService is nil")
	}

	logger := s.loggerWith(ctx, "RenameResort", "resort_id", params.ResortID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to rename resort", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "resort renamed")
	}()

	if strings.TrimSpace(params.DisplayName) == "" {
		vErr := &ValidationError{}
		vErr.add("display_name", "display name is required")
		err = vErr
		return
	}
	err = ws.RenameResort(params)
	return
}

// DeleteResort removes a resort and any staged edits for it.
func (s *EditorService) DeleteResort(ctx context.Context, ws *Workspace, resortID string) (err error) {
	if s == nil {
		return fmt.Errorf("EditorService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteResort", "resort_id", resortID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete resort", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "resort deleted")
	}()

	err = ws.DeleteResort(resortID)
	return
}

// SelectResort switches the session's working copy to another resort,
// folding staged edits on the previous selection back into the document.
func (s *EditorService) SelectResort(ctx context.Context, ws *Workspace, resortID string) (err error) {
	if s == nil {
		return fmt.Errorf("EditorService is nil")
	}

	logger := s.loggerWith(ctx, "SelectResort", "resort_id", resortID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to select resort", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "resort selected")
	}()

	err = ws.Select(resortID)
	return
}

// WorkingResort returns a copy of the selected resort's working state.
func (s *EditorService) WorkingResort(ctx context.Context, ws *Workspace) (resort *points.Resort, err error) {
	if s == nil {
		err = fmt.Errorf("EditorService is nil")
		return
	}
	err = ws.UpdateSelected(func(working *points.Resort) error {
		resort = working.Clone()
		return nil
	})
	return
}

// ListYears returns the years the document covers, falling back to the
// configured default range for empty documents.
func (s *EditorService) ListYears(ctx context.Context, ws *Workspace) (years []string, err error) {
	if s == nil {
		err = fmt.Errorf("EditorService is nil")
		return
	}
	var doc *points.Document
	doc, err = ws.Snapshot()
	if err != nil {
		return
	}
	years = doc.ListYears(s.defaultYears)
	return
}

// RoomTypes returns the room type vocabulary of the selected resort for one year.
func (s *EditorService) RoomTypes(ctx context.Context, ws *Workspace, year string) (rooms []string, err error) {
	if s == nil {
		err = fmt.Errorf("EditorService is nil")
		return
	}
	err = ws.UpdateSelected(func(working *points.Resort) error {
		rooms = working.RoomTypes(year)
		return nil
	})
	return
}

// AddSeason creates a season with default day categories on the selected resort.
func (s *EditorService) AddSeason(ctx context.Context, ws *Workspace, params AddSeasonParams) (err error) {
	if s == nil {
		return fmt.Errorf("EditorService is nil")
	}

	logger := s.loggerWith(ctx, "AddSeason", "year", params.Year, "season", params.Name)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add season", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "season added")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(params.Year) == "" {
		vErr.add("year", "year is required")
	}
	if strings.TrimSpace(params.Name) == "" {
		vErr.add("name", "season name is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	err = ws.UpdateSelected(func(working *points.Resort) error {
		working.AddSeason(params.Year, strings.TrimSpace(params.Name))
		return nil
	})
	return
}

// DeleteSeason removes a season by position. An out-of-range index is a no-op.
func (s *EditorService) DeleteSeason(ctx context.Context, ws *Workspace, params DeleteSeasonParams) (removed bool, err error) {
	if s == nil {
		err = fmt.Errorf("EditorService is nil")
		return
	}

	logger := s.loggerWith(ctx, "DeleteSeason", "year", params.Year, "index", params.Index)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete season", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("removed", removed).InfoContext(ctx, "season delete processed")
	}()

	err = ws.UpdateSelected(func(working *points.Resort) error {
		removed = working.DeleteSeason(params.Year, params.Index)
		return nil
	})
	return
}

// SetSeasonPeriods replaces a season's date ranges, dropping rows whose
// dates cannot be parsed.
func (s *EditorService) SetSeasonPeriods(ctx context.Context, ws *Workspace, params SetSeasonPeriodsParams) (result SetPeriodsResult, err error) {
	if s == nil {
		err = fmt.Errorf("EditorService is nil")
		return
	}

	logger := s.loggerWith(ctx, "SetSeasonPeriods", "year", params.Year, "index", params.Index)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to set season periods", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("kept", len(result.Periods), "discarded", result.Discarded).InfoContext(ctx, "season periods updated")
	}()

	err = ws.UpdateSelected(func(working *points.Resort) error {
		year, ok := working.Years[params.Year]
		if !ok || year == nil {
			return fmt.Errorf("%w: year %s", ErrNotFound, params.Year)
		}
		if params.Index < 0 || params.Index >= len(year.Seasons) {
			return fmt.Errorf("%w: season index %d", ErrNotFound, params.Index)
		}
		kept, discarded := year.Seasons[params.Index].SetPeriods(params.Periods)
		result = SetPeriodsResult{Periods: kept, Discarded: discarded}
		return nil
	})
	return
}

// SetSeasonPoints replaces one day category's point table on the selected
// resort, optionally propagating the season's tables to every other year.
func (s *EditorService) SetSeasonPoints(ctx context.Context, ws *Workspace, params SetSeasonPointsParams) (err error) {
	if s == nil {
		return fmt.Errorf("EditorService is nil")
	}

	logger := s.loggerWith(ctx, "SetSeasonPoints",
		"year", params.Year,
		"season", params.SeasonName,
		"category", params.Category,
		"all_years", params.ApplyToAllYears,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to set season points", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "season points updated")
	}()

	err = ws.UpdateSelected(func(working *points.Resort) error {
		season := working.FindSeason(params.Year, params.SeasonName)
		if season == nil {
			return fmt.Errorf("%w: season %s in %s", ErrNotFound, params.SeasonName, params.Year)
		}
		category, ok := season.DayCategories[params.Category]
		if !ok || category == nil {
			return fmt.Errorf("%w: day category %s", ErrNotFound, params.Category)
		}
		category.SetRoomPoints(params.RoomPoints)
		if params.ApplyToAllYears {
			working.PropagateSeasonPoints(params.Year, params.SeasonName)
		}
		return nil
	})
	return
}

// SetHolidayPoints replaces one holiday's point table on the selected
// resort, optionally propagating it to matching holidays in other years.
func (s *EditorService) SetHolidayPoints(ctx context.Context, ws *Workspace, params SetHolidayPointsParams) (err error) {
	if s == nil {
		return fmt.Errorf("EditorService is nil")
	}

	logger := s.loggerWith(ctx, "SetHolidayPoints",
		"year", params.Year,
		"holiday", params.HolidayKey,
		"all_years", params.ApplyToAllYears,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to set holiday points", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "holiday points updated")
	}()

	err = ws.UpdateSelected(func(working *points.Resort) error {
		holiday := working.FindHoliday(params.Year, params.HolidayKey)
		if holiday == nil {
			return fmt.Errorf("%w: holiday %s in %s", ErrNotFound, params.HolidayKey, params.Year)
		}
		holiday.SetRoomPoints(params.RoomPoints)
		if params.ApplyToAllYears {
			working.PropagateHolidayPoints(params.Year, params.HolidayKey)
		}
		return nil
	})
	return
}

// AddRoomType introduces a room type at zero into every point table of the
// selected resort, or of every resort when AllResorts is set. Repeating the
// operation never overwrites existing values.
func (s *EditorService) AddRoomType(ctx context.Context, ws *Workspace, params AddRoomTypeParams) (changed int, err error) {
	if s == nil {
		err = fmt.Errorf("EditorService is nil")
		return
	}

	logger := s.loggerWith(ctx, "AddRoomType", "room_type", params.RoomType, "all_resorts", params.AllResorts)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add room type", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("tables_changed", changed).InfoContext(ctx, "room type added")
	}()

	roomType := strings.TrimSpace(params.RoomType)
	if roomType == "" {
		vErr := &ValidationError{}
		vErr.add("room_type", "room type is required")
		err = vErr
		return
	}

	if params.AllResorts {
		err = ws.UpdateDocument(func(doc *points.Document) error {
			changed = doc.AddRoomType(roomType)
			return nil
		})
		return
	}
	err = ws.UpdateSelected(func(working *points.Resort) error {
		changed = working.AddRoomType(roomType)
		return nil
	})
	return
}

// AddHoliday adds a holiday override to every year of the selected resort.
// Years already carrying the reference are kept untouched; the return value
// counts the years actually covered.
func (s *EditorService) AddHoliday(ctx context.Context, ws *Workspace, params AddHolidayParams) (added int, err error) {
	if s == nil {
		err = fmt.Errorf("EditorService is nil")
		return
	}

	logger := s.loggerWith(ctx, "AddHoliday", "name", params.Name, "reference", params.GlobalReference)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add holiday", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("added", added).InfoContext(ctx, "holiday add processed")
	}()

	if strings.TrimSpace(params.Name) == "" && strings.TrimSpace(params.GlobalReference) == "" {
		vErr := &ValidationError{}
		vErr.add("name", "holiday name or global reference is required")
		err = vErr
		return
	}

	err = ws.UpdateSelected(func(working *points.Resort) error {
		added = working.AddHoliday(strings.TrimSpace(params.Name), strings.TrimSpace(params.GlobalReference))
		return nil
	})
	return
}

// DeleteHoliday removes every holiday on the selected resort matching the
// key, across all years. A key matching nothing is a no-op.
func (s *EditorService) DeleteHoliday(ctx context.Context, ws *Workspace, key string) (removed int, err error) {
	if s == nil {
		err = fmt.Errorf("EditorService is nil")
		return
	}

	logger := s.loggerWith(ctx, "DeleteHoliday", "key", key)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete holiday", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("removed", removed).InfoContext(ctx, "holiday delete processed")
	}()

	err = ws.UpdateSelected(func(working *points.Resort) error {
		removed = working.DeleteHoliday(key)
		return nil
	})
	return
}

func resortInfo(resort *points.Resort) ResortInfo {
	info := ResortInfo{
		ID:          resort.ID,
		DisplayName: resort.DisplayName,
		Code:        resort.Code,
		ResortName:  resort.ResortName,
		Address:     resort.Address,
		Timezone:    resort.Timezone,
	}
	if strings.TrimSpace(info.Timezone) == "" {
		info.Timezone = fallbackTimezone
	}
	if strings.TrimSpace(info.Address) == "" {
		info.Address = fallbackAddress
	}
	return info
}
