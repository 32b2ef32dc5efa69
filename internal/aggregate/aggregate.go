// Package aggregate computes weekly and holiday point totals from resort
// configurations. All functions are pure; callers pass the document state
// they want summarized.
package aggregate

import (
	"sort"

	"github.com/example/resort-points-editor/internal/points"
)

// WeeklyPoints totals one full week of nightly points for each room type in
// the season. A category contributes points multiplied by the number of
// recognized weekdays in its pattern; categories whose pattern names no real
// weekday contribute nothing. Rooms that appear in any category are always
// present in the result, at zero when they have no usable values. The second
// return value reports whether anything real contributed to the totals.
func WeeklyPoints(season *points.Season) (map[string]int, bool) {
	totals := map[string]int{}
	hasData := false
	if season == nil {
		return totals, false
	}
	for _, category := range season.DayCategories {
		if category == nil {
			continue
		}
		nights := points.ValidDayCount(category.DayPattern)
		for room, value := range category.RoomPoints {
			if _, ok := totals[room]; !ok {
				totals[room] = 0
			}
			if value == nil || nights == 0 {
				continue
			}
			totals[room] += *value * nights
			hasData = true
		}
	}
	return totals, hasData
}

// HolidayPoints returns a copy of the holiday's point table. Nil values are
// preserved so callers can distinguish "no value" from an explicit zero.
func HolidayPoints(holiday *points.Holiday) map[string]*int {
	if holiday == nil || holiday.RoomPoints == nil {
		return map[string]*int{}
	}
	clone := make(map[string]*int, len(holiday.RoomPoints))
	for room, value := range holiday.RoomPoints {
		if value == nil {
			clone[room] = nil
			continue
		}
		copied := *value
		clone[room] = &copied
	}
	return clone
}

// ReferenceYear picks the year a summary should report on: the preferred
// year when the resort actually carries it, otherwise the earliest of the
// resort's years, otherwise the preferred year as-is.
func ReferenceYear(resort *points.Resort, preferred string) string {
	if resort == nil || len(resort.Years) == 0 {
		return preferred
	}
	if _, ok := resort.Years[preferred]; ok {
		return preferred
	}
	years := make([]string, 0, len(resort.Years))
	for year := range resort.Years {
		years = append(years, year)
	}
	sort.Strings(years)
	return years[0]
}
