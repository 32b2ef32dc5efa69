package aggregate

import (
	"github.com/example/resort-points-editor/internal/points"
)

// Summary is a per-resort report of weekly season totals and holiday
// overrides for one reference year.
type Summary struct {
	ResortID        string         `json:"resort_id"`
	ReferenceYear   string         `json:"reference_year"`
	MaintenanceRate *float64       `json:"maintenance_rate,omitempty"`
	Seasons         []SeasonTotals `json:"seasons"`
	Holidays        []HolidayRow   `json:"holidays"`
}

// SeasonTotals is the weekly point total per room type for one season.
// HasData reports whether any category contributed a real value; summaries
// only carry rows where it is true.
type SeasonTotals struct {
	Name    string         `json:"name"`
	Totals  map[string]int `json:"totals"`
	HasData bool           `json:"has_data"`
}

// HolidayRow is one holiday's point table in the reference year.
type HolidayRow struct {
	Name      string          `json:"name"`
	Reference string          `json:"reference,omitempty"`
	Points    map[string]*int `json:"points"`
}

// BuildSummary computes the summary for one resort in the reference year.
// Seasons and holidays keep their configured order; seasons whose point
// tables carry no real values are left out entirely, holidays are always
// reported. A resort without the year yields an empty summary rather than
// an error.
func BuildSummary(resort *points.Resort, referenceYear string) Summary {
	summary := Summary{
		ResortID:      resort.ID,
		ReferenceYear: referenceYear,
		Seasons:       []SeasonTotals{},
		Holidays:      []HolidayRow{},
	}
	year, ok := resort.Years[referenceYear]
	if !ok || year == nil {
		return summary
	}
	for _, season := range year.Seasons {
		if season == nil {
			continue
		}
		totals, hasData := WeeklyPoints(season)
		if !hasData {
			continue
		}
		summary.Seasons = append(summary.Seasons, SeasonTotals{
			Name:    season.Name,
			Totals:  totals,
			HasData: hasData,
		})
	}
	for _, holiday := range year.Holidays {
		if holiday == nil {
			continue
		}
		summary.Holidays = append(summary.Holidays, HolidayRow{
			Name:      holiday.Name,
			Reference: holiday.GlobalReference,
			Points:    HolidayPoints(holiday),
		})
	}
	return summary
}
