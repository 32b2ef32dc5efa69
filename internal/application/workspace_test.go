package application

import (
	"bytes"
	"errors"
	"testing"

	"github.com/example/resort-points-editor/internal/points"
)

func workspaceDocument() *points.Document {
	doc := points.NewDocument()
	alpha := &points.Resort{ID: "alpha", DisplayName: "Alpha Lodge", Code: "AL", Timezone: "America/Denver"}
	season := alpha.AddSeason("2025", "High")
	season.DayCategories[points.CategorySunThu].RoomPoints = map[string]*int{"studio": points.IntPtr(10)}
	season.DayCategories[points.CategoryFriSat].RoomPoints = map[string]*int{"studio": points.IntPtr(20)}
	beta := &points.Resort{ID: "beta", DisplayName: "Beta Bay", Code: "BB", Timezone: "Pacific/Honolulu"}
	doc.Resorts = []*points.Resort{alpha, beta}
	return doc
}

func loadedWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws := NewWorkspace()
	payload, err := points.Marshal(workspaceDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ws.Load(payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ws
}

func TestWorkspace_Load(t *testing.T) {
	t.Run("rejects malformed payloads and keeps prior state", func(t *testing.T) {
		ws := loadedWorkspace(t)
		if err := ws.Load([]byte("{broken")); !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
		if !ws.HasDocument() {
			t.Fatal("expected the previous document to survive")
		}
	})

	t.Run("rejects a document without resorts", func(t *testing.T) {
		ws := NewWorkspace()
		err := ws.Load([]byte(`{"schema_version":"2","resorts":[]}`))
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
		if ws.HasDocument() {
			t.Fatal("expected no document to be loaded")
		}
	})

	t.Run("clears any prior selection", func(t *testing.T) {
		ws := loadedWorkspace(t)
		if err := ws.Select("alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		payload, _ := points.Marshal(workspaceDocument())
		if err := ws.Load(payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ws.SelectedID() != "" {
			t.Fatalf("expected empty selection, got %q", ws.SelectedID())
		}
	})
}

func TestWorkspace_Select(t *testing.T) {
	t.Run("keeps the previous selection when the resort is unknown", func(t *testing.T) {
		ws := loadedWorkspace(t)
		if err := ws.Select("alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := ws.Select("missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if ws.SelectedID() != "alpha" {
			t.Fatalf("expected alpha to stay selected, got %q", ws.SelectedID())
		}
	})

	t.Run("folds staged edits into the document on switch", func(t *testing.T) {
		ws := loadedWorkspace(t)
		if err := ws.Select("alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := ws.UpdateSelected(func(working *points.Resort) error {
			working.AddSeason("2025", "Shoulder")
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := ws.Select("beta"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		doc, err := ws.Snapshot()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := len(doc.FindResort("alpha").Years["2025"].Seasons); got != 2 {
			t.Fatalf("expected 2 seasons after reconcile, got %d", got)
		}
	})

	t.Run("re-selecting the same resort keeps staged edits", func(t *testing.T) {
		ws := loadedWorkspace(t)
		if err := ws.Select("alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := ws.UpdateSelected(func(working *points.Resort) error {
			working.AddSeason("2026", "Winter")
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := ws.Select("alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err = ws.UpdateSelected(func(working *points.Resort) error {
			if working.FindSeason("2026", "Winter") == nil {
				t.Fatal("expected staged season to survive re-selection")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestWorkspace_UpdateSelected(t *testing.T) {
	t.Run("requires a loaded document", func(t *testing.T) {
		ws := NewWorkspace()
		err := ws.UpdateSelected(func(*points.Resort) error { return nil })
		if !errors.Is(err, ErrNoDocument) {
			t.Fatalf("expected ErrNoDocument, got %v", err)
		}
	})

	t.Run("requires a selection", func(t *testing.T) {
		ws := loadedWorkspace(t)
		err := ws.UpdateSelected(func(*points.Resort) error { return nil })
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("bumps the revision only on success", func(t *testing.T) {
		ws := loadedWorkspace(t)
		if err := ws.Select("alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		before := ws.Revision()
		failure := errors.New("boom")
		if err := ws.UpdateSelected(func(*points.Resort) error { return failure }); !errors.Is(err, failure) {
			t.Fatalf("expected the callback error, got %v", err)
		}
		if ws.Revision() != before {
			t.Fatal("expected revision to be unchanged after a failed update")
		}
		if err := ws.UpdateSelected(func(*points.Resort) error { return nil }); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ws.Revision() == before {
			t.Fatal("expected revision to advance after a successful update")
		}
	})
}

func TestWorkspace_SerializeAndVerify(t *testing.T) {
	t.Run("serialization includes staged edits", func(t *testing.T) {
		ws := loadedWorkspace(t)
		baseline, err := ws.Serialize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := ws.Select("alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err = ws.UpdateSelected(func(working *points.Resort) error {
			working.AddRoomType("penthouse")
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		current, err := ws.Serialize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if bytes.Equal(baseline, current) {
			t.Fatal("expected staged edit to change the serialization")
		}
	})

	t.Run("verify still matches after a select without edits", func(t *testing.T) {
		ws := loadedWorkspace(t)
		payload, err := ws.Serialize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := ws.Select("alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := ws.Select("beta"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		match, err := ws.Verify(payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !match {
			t.Fatal("expected the exported copy to still match after reconciliation")
		}
	})

	t.Run("verify detects stale payloads", func(t *testing.T) {
		ws := loadedWorkspace(t)
		payload, err := ws.Serialize()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		match, err := ws.Verify(payload)
		if err != nil || !match {
			t.Fatalf("expected a clean match, got match=%v err=%v", match, err)
		}

		if err := ws.Select("alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err = ws.UpdateSelected(func(working *points.Resort) error {
			working.AddSeason("2026", "Winter")
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		match, err = ws.Verify(payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if match {
			t.Fatal("expected the stale payload to mismatch")
		}
	})

	t.Run("verify rejects malformed payloads", func(t *testing.T) {
		ws := loadedWorkspace(t)
		if _, err := ws.Verify([]byte("nope")); !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
	})
}

func TestWorkspace_Merge(t *testing.T) {
	t.Run("imports new resorts and skips colliding ids", func(t *testing.T) {
		ws := loadedWorkspace(t)

		incoming := points.NewDocument()
		incoming.Resorts = []*points.Resort{
			{ID: "alpha", DisplayName: "Impostor"},
			{ID: "gamma", DisplayName: "Gamma Grove"},
		}
		payload, err := points.Marshal(incoming)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := ws.Merge(payload, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Added != 1 {
			t.Fatalf("expected 1 added, got %d", result.Added)
		}
		if len(result.Skipped) != 1 || result.Skipped[0] != "alpha" {
			t.Fatalf("expected alpha skipped, got %v", result.Skipped)
		}

		doc, err := ws.Snapshot()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.FindResort("alpha").DisplayName != "Alpha Lodge" {
			t.Fatal("expected the existing resort to be untouched")
		}
		if doc.FindResort("gamma") == nil {
			t.Fatal("expected the new resort to be imported")
		}
	})

	t.Run("imports only the selected resort ids", func(t *testing.T) {
		ws := loadedWorkspace(t)

		incoming := points.NewDocument()
		incoming.Resorts = []*points.Resort{
			{ID: "gamma", DisplayName: "Gamma Grove"},
			{ID: "delta", DisplayName: "Delta Dunes"},
		}
		payload, err := points.Marshal(incoming)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := ws.Merge(payload, []string{"delta"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Added != 1 {
			t.Fatalf("expected 1 added, got %d", result.Added)
		}

		doc, err := ws.Snapshot()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.FindResort("gamma") != nil {
			t.Fatal("expected the unselected resort to stay out")
		}
		if doc.FindResort("delta") == nil {
			t.Fatal("expected the selected resort to be imported")
		}
	})
}

func TestWorkspace_CreateResort(t *testing.T) {
	t.Run("derives a unique id from the display name", func(t *testing.T) {
		ws := loadedWorkspace(t)
		first, err := ws.CreateResort(CreateResortParams{DisplayName: "Alpha Lodge"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.ID != "alpha-lodge" {
			t.Fatalf("expected alpha-lodge, got %q", first.ID)
		}
		second, err := ws.CreateResort(CreateResortParams{DisplayName: "Alpha Lodge"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.ID != "alpha-lodge-2" {
			t.Fatalf("expected alpha-lodge-2, got %q", second.ID)
		}
	})
}

func TestWorkspace_CloneResort(t *testing.T) {
	t.Run("copies content under a fresh id", func(t *testing.T) {
		ws := loadedWorkspace(t)
		clone, err := ws.CloneResort("alpha")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if clone.DisplayName != "Alpha Lodge (Copy)" {
			t.Fatalf("expected copy suffix, got %q", clone.DisplayName)
		}
		if clone.ID == "alpha" {
			t.Fatal("expected a new id")
		}
		if clone.FindSeason("2025", "High") == nil {
			t.Fatal("expected seasons to be copied")
		}
	})

	t.Run("unknown source is an error", func(t *testing.T) {
		ws := loadedWorkspace(t)
		if _, err := ws.CloneResort("missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestWorkspace_DeleteResort(t *testing.T) {
	t.Run("discards staged edits and clears the selection", func(t *testing.T) {
		ws := loadedWorkspace(t)
		if err := ws.Select("alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err := ws.UpdateSelected(func(working *points.Resort) error {
			working.AddSeason("2026", "Winter")
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := ws.DeleteResort("alpha"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ws.SelectedID() != "" {
			t.Fatalf("expected selection to clear, got %q", ws.SelectedID())
		}
		doc, err := ws.Snapshot()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.FindResort("alpha") != nil {
			t.Fatal("expected the resort to be gone")
		}
	})

	t.Run("unknown resort is an error", func(t *testing.T) {
		ws := loadedWorkspace(t)
		if err := ws.DeleteResort("missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
