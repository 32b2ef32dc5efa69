package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/resort-points-editor/internal/points"
)

func editorFixture(t *testing.T) (*EditorService, *Workspace) {
	t.Helper()
	return NewEditorService([]string{"2025", "2026"}), loadedWorkspace(t)
}

func TestEditorService_ListResorts(t *testing.T) {
	t.Run("orders resorts west to east with display fallbacks", func(t *testing.T) {
		svc, ws := editorFixture(t)
		infos, err := svc.ListResorts(context.Background(), ws)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(infos) != 2 {
			t.Fatalf("expected 2 resorts, got %d", len(infos))
		}
		// beta is in Hawaii, alpha in Denver.
		if infos[0].ID != "beta" || infos[1].ID != "alpha" {
			t.Fatalf("expected beta before alpha, got %s, %s", infos[0].ID, infos[1].ID)
		}
		if infos[0].Address != "Address not available" {
			t.Fatalf("expected address fallback, got %q", infos[0].Address)
		}
	})

	t.Run("fails without a loaded document", func(t *testing.T) {
		svc := NewEditorService(nil)
		if _, err := svc.ListResorts(context.Background(), NewWorkspace()); !errors.Is(err, ErrNoDocument) {
			t.Fatalf("expected ErrNoDocument, got %v", err)
		}
	})
}

func TestEditorService_CreateResort(t *testing.T) {
	t.Run("requires a display name", func(t *testing.T) {
		svc, ws := editorFixture(t)
		_, err := svc.CreateResort(context.Background(), ws, CreateResortParams{})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if _, ok := vErr.FieldErrors["display_name"]; !ok {
			t.Fatalf("expected display_name field error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("derives code and timezone fallback", func(t *testing.T) {
		svc, ws := editorFixture(t)
		info, err := svc.CreateResort(context.Background(), ws, CreateResortParams{DisplayName: "Cedar Point Shores"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.Code != "CPS" {
			t.Fatalf("expected derived code CPS, got %q", info.Code)
		}
		if info.Timezone != "Unknown" {
			t.Fatalf("expected timezone fallback, got %q", info.Timezone)
		}
	})
}

func TestEditorService_SeasonOperations(t *testing.T) {
	t.Run("add season requires a selection", func(t *testing.T) {
		svc, ws := editorFixture(t)
		err := svc.AddSeason(context.Background(), ws, AddSeasonParams{Year: "2025", Name: "Low"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("add season validates input", func(t *testing.T) {
		svc, ws := editorFixture(t)
		err := svc.AddSeason(context.Background(), ws, AddSeasonParams{})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("add and delete season on the working copy", func(t *testing.T) {
		svc, ws := editorFixture(t)
		if err := svc.SelectResort(context.Background(), ws, "alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := svc.AddSeason(context.Background(), ws, AddSeasonParams{Year: "2025", Name: "Low"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		working, err := svc.WorkingResort(context.Background(), ws)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(working.Years["2025"].Seasons) != 2 {
			t.Fatalf("expected 2 seasons, got %d", len(working.Years["2025"].Seasons))
		}

		removed, err := svc.DeleteSeason(context.Background(), ws, DeleteSeasonParams{Year: "2025", Index: 9})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if removed {
			t.Fatal("expected out-of-range delete to be a no-op")
		}
	})

	t.Run("set periods drops malformed rows", func(t *testing.T) {
		svc, ws := editorFixture(t)
		if err := svc.SelectResort(context.Background(), ws, "alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		result, err := svc.SetSeasonPeriods(context.Background(), ws, SetSeasonPeriodsParams{
			Year:  "2025",
			Index: 0,
			Periods: []points.Period{
				{Start: "2025-06-01", End: "2025-08-31"},
				{Start: "whenever", End: "2025-09-30"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Discarded != 1 || len(result.Periods) != 1 {
			t.Fatalf("expected 1 kept and 1 discarded, got %+v", result)
		}
	})
}

func TestEditorService_SetSeasonPoints(t *testing.T) {
	t.Run("replaces the category table wholesale", func(t *testing.T) {
		svc, ws := editorFixture(t)
		if err := svc.SelectResort(context.Background(), ws, "alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := svc.SetSeasonPoints(context.Background(), ws, SetSeasonPointsParams{
			Year:       "2025",
			SeasonName: "High",
			Category:   points.CategorySunThu,
			RoomPoints: map[string]*int{"loft": points.IntPtr(12)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		working, err := svc.WorkingResort(context.Background(), ws)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		table := working.FindSeason("2025", "High").DayCategories[points.CategorySunThu].RoomPoints
		if _, survived := table["studio"]; survived {
			t.Fatal("expected the old room to be removed by the replacement")
		}
		if table["loft"] == nil || *table["loft"] != 12 {
			t.Fatalf("expected loft at 12, got %v", table["loft"])
		}
	})

	t.Run("unknown season or category is an error", func(t *testing.T) {
		svc, ws := editorFixture(t)
		if err := svc.SelectResort(context.Background(), ws, "alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := svc.SetSeasonPoints(context.Background(), ws, SetSeasonPointsParams{Year: "2025", SeasonName: "Nope", Category: points.CategorySunThu})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		err = svc.SetSeasonPoints(context.Background(), ws, SetSeasonPointsParams{Year: "2025", SeasonName: "High", Category: "weekend"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestEditorService_RoomTypeAndHoliday(t *testing.T) {
	t.Run("add room type across all resorts", func(t *testing.T) {
		svc, ws := editorFixture(t)
		if err := svc.SelectResort(context.Background(), ws, "alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		changed, err := svc.AddRoomType(context.Background(), ws, AddRoomTypeParams{RoomType: "penthouse", AllResorts: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// alpha has two categories in 2025; beta has no years.
		if changed != 2 {
			t.Fatalf("expected 2 tables changed, got %d", changed)
		}
		working, err := svc.WorkingResort(context.Background(), ws)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		v := working.FindSeason("2025", "High").DayCategories[points.CategorySunThu].RoomPoints["penthouse"]
		if v == nil || *v != 0 {
			t.Fatalf("expected the document-wide add to reach the working copy, got %v", v)
		}
	})

	t.Run("holiday add spans years and dedups on the reference", func(t *testing.T) {
		svc, ws := editorFixture(t)
		if err := svc.SelectResort(context.Background(), ws, "alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := svc.AddSeason(context.Background(), ws, AddSeasonParams{Year: "2026", Name: "High"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		added, err := svc.AddHoliday(context.Background(), ws, AddHolidayParams{Name: "Christmas Week", GlobalReference: "Christmas"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if added != 2 {
			t.Fatalf("expected both years covered, got %d", added)
		}
		added, err = svc.AddHoliday(context.Background(), ws, AddHolidayParams{Name: "Noel", GlobalReference: "Christmas"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if added != 0 {
			t.Fatalf("expected the duplicate reference to be rejected, got %d", added)
		}

		removed, err := svc.DeleteHoliday(context.Background(), ws, "Christmas")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if removed != 2 {
			t.Fatalf("expected 2 removed across years, got %d", removed)
		}

		removed, err = svc.DeleteHoliday(context.Background(), ws, "Christmas")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if removed != 0 {
			t.Fatalf("expected a repeat delete to be a no-op, got %d", removed)
		}
	})
}

func TestEditorService_ListYears(t *testing.T) {
	t.Run("uses configured defaults for an empty document", func(t *testing.T) {
		svc := NewEditorService([]string{"2030", "2031"})
		ws := NewWorkspace()
		ws.LoadDocument(points.NewDocument())
		years, err := svc.ListYears(context.Background(), ws)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(years) != 2 || years[0] != "2030" {
			t.Fatalf("expected configured defaults, got %v", years)
		}
	})
}
