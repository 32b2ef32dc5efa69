package points

import "sort"

// FindResort returns the first resort whose ID matches, or nil.
func (d *Document) FindResort(id string) *Resort {
	if d == nil {
		return nil
	}
	for _, resort := range d.Resorts {
		if resort != nil && resort.ID == id {
			return resort
		}
	}
	return nil
}

// ResortIndex returns the position of the first resort whose ID matches, or
// -1 when absent.
func (d *Document) ResortIndex(id string) int {
	if d == nil {
		return -1
	}
	for i, resort := range d.Resorts {
		if resort != nil && resort.ID == id {
			return i
		}
	}
	return -1
}

// ListYears returns the sorted union of years appearing in the global holiday
// calendar and in any resort. When the document names no years at all the
// fallback slice is returned instead.
func (d *Document) ListYears(fallback []string) []string {
	seen := map[string]struct{}{}
	if d != nil {
		for year := range d.GlobalHolidays {
			seen[year] = struct{}{}
		}
		for _, resort := range d.Resorts {
			if resort == nil {
				continue
			}
			for year := range resort.Years {
				seen[year] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return append([]string(nil), fallback...)
	}
	years := make([]string, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Strings(years)
	return years
}

// RoomTypes returns the sorted set of room type names appearing anywhere in
// the resort's point tables for the given year. Nil when the year is absent.
func (r *Resort) RoomTypes(year string) []string {
	if r == nil {
		return nil
	}
	y, ok := r.Years[year]
	if !ok || y == nil {
		return nil
	}
	seen := map[string]struct{}{}
	for _, season := range y.Seasons {
		if season == nil {
			continue
		}
		for _, category := range season.DayCategories {
			if category == nil {
				continue
			}
			for room := range category.RoomPoints {
				seen[room] = struct{}{}
			}
		}
	}
	for _, holiday := range y.Holidays {
		if holiday == nil {
			continue
		}
		for room := range holiday.RoomPoints {
			seen[room] = struct{}{}
		}
	}
	rooms := make([]string, 0, len(seen))
	for room := range seen {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms
}

// FindSeason returns the season with the given name in the resort's year, or
// nil when either the year or the season is absent.
func (r *Resort) FindSeason(year, name string) *Season {
	if r == nil {
		return nil
	}
	y, ok := r.Years[year]
	if !ok || y == nil {
		return nil
	}
	for _, season := range y.Seasons {
		if season != nil && season.Name == name {
			return season
		}
	}
	return nil
}

// FindHoliday returns the holiday in the resort's year whose dedup key
// matches, or nil.
func (r *Resort) FindHoliday(year, key string) *Holiday {
	if r == nil {
		return nil
	}
	y, ok := r.Years[year]
	if !ok || y == nil {
		return nil
	}
	for _, holiday := range y.Holidays {
		if holiday != nil && holiday.Key() == key {
			return holiday
		}
	}
	return nil
}
