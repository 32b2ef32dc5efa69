package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/resort-points-editor/internal/points"
)

func TestSummaryService_Summarize(t *testing.T) {
	t.Run("reflects staged edits", func(t *testing.T) {
		svc := NewSummaryService("2025", nil)
		ws := loadedWorkspace(t)
		if err := ws.Select("alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := ws.UpdateSelected(func(working *points.Resort) error {
			category := working.FindSeason("2025", "High").DayCategories[points.CategorySunThu]
			category.RoomPoints["studio"] = points.IntPtr(30)
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		summary, err := svc.Summarize(context.Background(), ws, "alpha", "2025")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 30*5 weekdays + 20*2 weekend nights.
		if got := summary.Seasons[0].Totals["studio"]; got != 190 {
			t.Fatalf("expected 190, got %d", got)
		}
	})

	t.Run("falls back to the earliest year when the base year is absent", func(t *testing.T) {
		svc := NewSummaryService("2030", nil)
		ws := loadedWorkspace(t)
		summary, err := svc.Summarize(context.Background(), ws, "alpha", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.ReferenceYear != "2025" {
			t.Fatalf("expected 2025, got %s", summary.ReferenceYear)
		}
	})

	t.Run("unknown resort is an error", func(t *testing.T) {
		svc := NewSummaryService("2025", nil)
		ws := loadedWorkspace(t)
		if _, err := svc.Summarize(context.Background(), ws, "missing", ""); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("keeps sessions with the same resort id apart", func(t *testing.T) {
		svc := NewSummaryService("2025", nil)
		first := loadedWorkspace(t)

		doc := workspaceDocument()
		season := doc.Resorts[0].FindSeason("2025", "High")
		season.DayCategories[points.CategorySunThu].RoomPoints["studio"] = points.IntPtr(99)
		season.DayCategories[points.CategoryFriSat].RoomPoints["studio"] = points.IntPtr(99)
		payload, err := points.Marshal(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second := NewWorkspace()
		if err := second.Load(payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := svc.Summarize(context.Background(), first, "alpha", "2025")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Seasons[0].Totals["studio"] != 90 {
			t.Fatalf("expected 90, got %d", got.Seasons[0].Totals["studio"])
		}
		got, err = svc.Summarize(context.Background(), second, "alpha", "2025")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Same resort id and revision, but a different session's data.
		if got.Seasons[0].Totals["studio"] != 693 {
			t.Fatalf("expected 693, got %d", got.Seasons[0].Totals["studio"])
		}
	})

	t.Run("serves repeated reads of an unchanged workspace from cache", func(t *testing.T) {
		svc := NewSummaryService("2025", nil)
		ws := loadedWorkspace(t)
		first, err := svc.Summarize(context.Background(), ws, "alpha", "2025")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.Summarize(context.Background(), ws, "alpha", "2025")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Seasons[0].Totals["studio"] != second.Seasons[0].Totals["studio"] {
			t.Fatal("expected identical totals from the cached read")
		}
	})
}
