package points

import (
	"bytes"
	"errors"
	"testing"
)

func TestMarshal(t *testing.T) {
	t.Run("produces identical bytes for equal documents", func(t *testing.T) {
		left := NewDocument()
		left.Resorts = []*Resort{testResort()}
		right := left.Clone()

		a, err := Marshal(left)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := Marshal(right)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(a, b) {
			t.Fatal("expected canonical forms to match")
		}
	})

	t.Run("keeps empty collections empty through a clone", func(t *testing.T) {
		doc := NewDocument()
		doc.Resorts = []*Resort{testResort()}
		doc.GlobalHolidays["2025"] = []GlobalHoliday{}

		clone := doc.Clone()
		if clone.Resorts[0].Years["2025"].Seasons[0].Periods == nil {
			t.Fatal("expected empty periods to survive as empty, not null")
		}
		if clone.GlobalHolidays["2025"] == nil {
			t.Fatal("expected the empty holiday list to survive as empty")
		}

		a, err := Marshal(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := Marshal(clone)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(a, b) {
			t.Fatal("expected the clone to serialize identically")
		}
	})

	t.Run("round-trips through Unmarshal byte-exactly", func(t *testing.T) {
		doc := NewDocument()
		doc.Resorts = []*Resort{testResort()}
		doc.GlobalHolidays["2025"] = []GlobalHoliday{{Date: "2025-12-25", Name: "Christmas"}}
		doc.Configuration.MaintenanceRates["2025"] = 8.25

		first, err := Marshal(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		decoded, err := Unmarshal(first)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Marshal(decoded)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(first, second) {
			t.Fatal("expected byte-exact round trip")
		}
	})

	t.Run("preserves the null versus zero distinction", func(t *testing.T) {
		doc := NewDocument()
		r := testResort()
		r.Years["2025"].Seasons[0].DayCategories[CategorySunThu].RoomPoints["loft"] = nil
		doc.Resorts = []*Resort{r}

		data, err := Marshal(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		decoded, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		table := decoded.Resorts[0].Years["2025"].Seasons[0].DayCategories[CategorySunThu].RoomPoints
		v, present := table["loft"]
		if !present || v != nil {
			t.Fatalf("expected loft present with nil value, got present=%v value=%v", present, v)
		}
	})
}

func TestUnmarshal(t *testing.T) {
	t.Run("rejects invalid JSON", func(t *testing.T) {
		_, err := Unmarshal([]byte("{not json"))
		if !errors.Is(err, ErrMalformedDocument) {
			t.Fatalf("expected ErrMalformedDocument, got %v", err)
		}
	})

	t.Run("rejects a missing schema version", func(t *testing.T) {
		_, err := Unmarshal([]byte(`{"resorts":[{"id":"r"}]}`))
		if !errors.Is(err, ErrMalformedDocument) {
			t.Fatalf("expected ErrMalformedDocument, got %v", err)
		}
	})

	t.Run("rejects a document without resorts", func(t *testing.T) {
		_, err := Unmarshal([]byte(`{"schema_version":"2","resorts":[]}`))
		if !errors.Is(err, ErrMalformedDocument) {
			t.Fatalf("expected ErrMalformedDocument, got %v", err)
		}
	})

	t.Run("rejects a resort without an id", func(t *testing.T) {
		_, err := Unmarshal([]byte(`{"schema_version":"2","resorts":[{"display_name":"X"}]}`))
		if !errors.Is(err, ErrMalformedDocument) {
			t.Fatalf("expected ErrMalformedDocument, got %v", err)
		}
	})

	t.Run("fills optional containers on decode", func(t *testing.T) {
		doc, err := Unmarshal([]byte(`{"schema_version":"2","resorts":[{"id":"r"}]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.GlobalHolidays == nil {
			t.Fatal("expected global_holidays to be non-nil")
		}
		if doc.Configuration.MaintenanceRates == nil {
			t.Fatal("expected maintenance_rates to be non-nil")
		}
	})
}

func TestEqual(t *testing.T) {
	t.Run("reports drift after a mutation", func(t *testing.T) {
		left := NewDocument()
		left.Resorts = []*Resort{testResort()}
		right := left.Clone()

		if !Equal(left, right) {
			t.Fatal("expected clones to compare equal")
		}
		right.Resorts[0].AddRoomType("penthouse")
		if Equal(left, right) {
			t.Fatal("expected mutation to break equality")
		}
	})
}
