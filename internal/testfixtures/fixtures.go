package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/resort-points-editor/internal/persistence"
	"github.com/example/resort-points-editor/internal/points"
)

var (
	resortCounter   uint64
	documentCounter uint64
)

var referenceTime = time.Date(2025, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ---------------------------- Resort fixtures ----------------------------

// ResortOption configures a generated resort fixture.
type ResortOption func(*points.Resort)

// WithResortID overrides the generated resort identifier.
func WithResortID(id string) ResortOption {
	return func(r *points.Resort) {
		r.ID = id
	}
}

// WithTimezone sets the resort's IANA timezone name.
func WithTimezone(tz string) ResortOption {
	return func(r *points.Resort) {
		r.Timezone = tz
	}
}

// WithAddress sets the resort's street address.
func WithAddress(address string) ResortOption {
	return func(r *points.Resort) {
		r.Address = address
	}
}

// WithYear attaches a year, replacing any existing entry for it.
func WithYear(year string, y *points.Year) ResortOption {
	return func(r *points.Resort) {
		if r.Years == nil {
			r.Years = map[string]*points.Year{}
		}
		r.Years[year] = y
	}
}

// WithEmptyYear attaches a year holding no seasons or holidays.
func WithEmptyYear(year string) ResortOption {
	return WithYear(year, &points.Year{Seasons: []*points.Season{}, Holidays: []*points.Holiday{}})
}

// NewResortFixture returns a deterministic resort carrying one year ("2025")
// with a fully priced season and one holiday. Options may override any part.
func NewResortFixture(opts ...ResortOption) *points.Resort {
	idx := atomic.AddUint64(&resortCounter, 1)
	resort := &points.Resort{
		ID:          fmt.Sprintf("resort-%03d", idx),
		DisplayName: fmt.Sprintf("Resort %03d", idx),
		Code:        fmt.Sprintf("R%02d", idx%100),
		ResortName:  fmt.Sprintf("Resort %03d Main Lodge", idx),
		Address:     fmt.Sprintf("%d Shoreline Drive", idx),
		Timezone:    "America/Denver",
		Years: map[string]*points.Year{
			"2025": NewYearFixture(),
		},
	}
	for _, opt := range opts {
		opt(resort)
	}
	return resort
}

// NewYearFixture returns a year with one priced season and one holiday.
func NewYearFixture() *points.Year {
	return &points.Year{
		Seasons:  []*points.Season{NewSeasonFixture("High")},
		Holidays: []*points.Holiday{NewHolidayFixture("Christmas Week", "Christmas")},
	}
}

// NewSeasonFixture returns a season with the default day categories priced
// for a studio room: 10 points Sunday through Thursday, 20 on the weekend.
func NewSeasonFixture(name string) *points.Season {
	return &points.Season{
		Name: name,
		Periods: []points.Period{
			{Start: "2025-06-01", End: "2025-08-31"},
		},
		DayCategories: map[string]*points.DayCategory{
			points.CategorySunThu: {
				DayPattern: []string{"Sun", "Mon", "Tue", "Wed", "Thu"},
				RoomPoints: map[string]*int{"studio": points.IntPtr(10)},
			},
			points.CategoryFriSat: {
				DayPattern: []string{"Fri", "Sat"},
				RoomPoints: map[string]*int{"studio": points.IntPtr(20)},
			},
		},
	}
}

// NewHolidayFixture returns a holiday priced at 30 studio points per night.
func NewHolidayFixture(name, globalReference string) *points.Holiday {
	return &points.Holiday{
		Name:            name,
		GlobalReference: globalReference,
		RoomPoints:      map[string]*int{"studio": points.IntPtr(30)},
	}
}

// --------------------------- Document fixtures ---------------------------

// DocumentOption configures a generated document fixture.
type DocumentOption func(*points.Document)

// WithResorts replaces the document's resorts.
func WithResorts(resorts ...*points.Resort) DocumentOption {
	return func(d *points.Document) {
		d.Resorts = resorts
	}
}

// NewDocumentFixture returns a valid document holding one generated resort.
func NewDocumentFixture(opts ...DocumentOption) *points.Document {
	doc := &points.Document{
		SchemaVersion:  points.SchemaVersion,
		Resorts:        []*points.Resort{NewResortFixture()},
		GlobalHolidays: map[string][]points.GlobalHoliday{},
		Configuration:  points.Configuration{MaintenanceRates: map[string]float64{}},
	}
	for _, opt := range opts {
		opt(doc)
	}
	return doc
}

// NewDocumentRecordFixture returns a persistence record wrapping a canonical
// serialization of a generated document.
func NewDocumentRecordFixture() persistence.DocumentRecord {
	idx := atomic.AddUint64(&documentCounter, 1)
	payload, err := points.Marshal(NewDocumentFixture())
	if err != nil {
		payload = []byte("{}\n")
	}
	return persistence.DocumentRecord{
		Name:     fmt.Sprintf("snapshot-%03d", idx),
		Revision: 1,
		Payload:  payload,
		SavedAt:  referenceTime.Add(time.Duration(idx) * time.Minute),
	}
}
