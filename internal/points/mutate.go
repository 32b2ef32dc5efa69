package points

// EnsureDefaultDayCategories populates the season with the standard Sunday
// through Thursday and Friday/Saturday categories when it has none. Existing
// categories are never touched.
func (s *Season) EnsureDefaultDayCategories() {
	if s == nil {
		return
	}
	if s.DayCategories == nil {
		s.DayCategories = make(map[string]*DayCategory)
	}
	if len(s.DayCategories) > 0 {
		return
	}
	s.DayCategories[CategorySunThu] = &DayCategory{
		DayPattern: []string{"Sun", "Mon", "Tue", "Wed", "Thu"},
		RoomPoints: map[string]*int{},
	}
	s.DayCategories[CategoryFriSat] = &DayCategory{
		DayPattern: []string{"Fri", "Sat"},
		RoomPoints: map[string]*int{},
	}
}

// AddSeason appends a new season with the default day categories to the
// resort's year, creating the year on first use. Returns the new season.
func (r *Resort) AddSeason(year, name string) *Season {
	y := r.EnsureYear(year)
	season := &Season{Name: name, Periods: []Period{}}
	season.EnsureDefaultDayCategories()
	y.Seasons = append(y.Seasons, season)
	return season
}

// DeleteSeason removes the season at index from the resort's year. An absent
// year or out-of-range index is a no-op.
func (r *Resort) DeleteSeason(year string, index int) bool {
	if r == nil {
		return false
	}
	y, ok := r.Years[year]
	if !ok || y == nil {
		return false
	}
	if index < 0 || index >= len(y.Seasons) {
		return false
	}
	y.Seasons = append(y.Seasons[:index], y.Seasons[index+1:]...)
	return true
}

// SetPeriods replaces the season's period list. Rows whose start or end fails
// to parse as a date are dropped; the second return value counts them. Dates
// are rewritten in the canonical layout.
func (s *Season) SetPeriods(periods []Period) (kept []Period, discarded int) {
	kept = []Period{}
	for _, p := range periods {
		start, okStart := ParseDate(p.Start)
		end, okEnd := ParseDate(p.End)
		if !okStart || !okEnd {
			discarded++
			continue
		}
		kept = append(kept, Period{Start: FormatDate(start), End: FormatDate(end)})
	}
	s.Periods = kept
	return kept, discarded
}

// SetRoomPoints replaces the category's point table wholesale. Rooms absent
// from the new table are removed.
func (c *DayCategory) SetRoomPoints(roomPoints map[string]*int) {
	c.RoomPoints = clonePointsMap(roomPoints)
	if c.RoomPoints == nil {
		c.RoomPoints = map[string]*int{}
	}
}

// SetRoomPoints replaces the holiday's point table wholesale.
func (h *Holiday) SetRoomPoints(roomPoints map[string]*int) {
	h.RoomPoints = clonePointsMap(roomPoints)
	if h.RoomPoints == nil {
		h.RoomPoints = map[string]*int{}
	}
}

// AddRoomType inserts the room type with an explicit zero into every day
// category and holiday of every year of the resort. Tables that already carry
// the room keep their value. Returns the number of tables changed.
func (r *Resort) AddRoomType(roomType string) int {
	if r == nil {
		return 0
	}
	changed := 0
	for _, y := range r.Years {
		if y == nil {
			continue
		}
		for _, season := range y.Seasons {
			if season == nil {
				continue
			}
			for _, category := range season.DayCategories {
				if category == nil {
					continue
				}
				if category.RoomPoints == nil {
					category.RoomPoints = map[string]*int{}
				}
				if _, ok := category.RoomPoints[roomType]; !ok {
					category.RoomPoints[roomType] = IntPtr(0)
					changed++
				}
			}
		}
		for _, holiday := range y.Holidays {
			if holiday == nil {
				continue
			}
			if holiday.RoomPoints == nil {
				holiday.RoomPoints = map[string]*int{}
			}
			if _, ok := holiday.RoomPoints[roomType]; !ok {
				holiday.RoomPoints[roomType] = IntPtr(0)
				changed++
			}
		}
	}
	return changed
}

// AddRoomType applies Resort.AddRoomType to every resort in the document.
// Returns the number of tables changed across all resorts.
func (d *Document) AddRoomType(roomType string) int {
	if d == nil {
		return 0
	}
	changed := 0
	for _, resort := range d.Resorts {
		changed += resort.AddRoomType(roomType)
	}
	return changed
}

// AddHoliday appends a holiday with an empty point table to every year of
// the resort. Years already carrying a holiday with the same global
// reference are left alone. Returns the number of years the holiday was
// added to.
func (r *Resort) AddHoliday(name, globalReference string) int {
	if r == nil {
		return 0
	}
	if globalReference == "" {
		globalReference = name
	}
	if name == "" {
		name = globalReference
	}
	added := 0
	for _, y := range r.Years {
		if y == nil {
			continue
		}
		exists := false
		for _, holiday := range y.Holidays {
			if holiday != nil && holiday.GlobalReference == globalReference {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		y.Holidays = append(y.Holidays, &Holiday{Name: name, GlobalReference: globalReference, RoomPoints: map[string]*int{}})
		added++
	}
	return added
}

// DeleteHoliday removes every holiday across all of the resort's years whose
// global reference or display name matches key. Returns the number removed.
func (r *Resort) DeleteHoliday(key string) int {
	if r == nil {
		return 0
	}
	removed := 0
	for _, y := range r.Years {
		if y == nil {
			continue
		}
		kept := y.Holidays[:0]
		for _, holiday := range y.Holidays {
			if holiday != nil && (holiday.GlobalReference == key || holiday.Name == key) {
				removed++
				continue
			}
			kept = append(kept, holiday)
		}
		y.Holidays = kept
	}
	return removed
}

// PropagateSeasonPoints copies the named season's day category point tables
// from the base year into every other year of the resort that carries a
// season with the same name. Periods and other years' extra categories are
// left alone. Returns the number of seasons updated.
func (r *Resort) PropagateSeasonPoints(baseYear, seasonName string) int {
	source := r.FindSeason(baseYear, seasonName)
	if source == nil {
		return 0
	}
	updated := 0
	for year := range r.Years {
		if year == baseYear {
			continue
		}
		target := r.FindSeason(year, seasonName)
		if target == nil {
			continue
		}
		if target.DayCategories == nil {
			target.DayCategories = make(map[string]*DayCategory)
		}
		for key, category := range source.DayCategories {
			if category == nil {
				continue
			}
			existing, ok := target.DayCategories[key]
			if !ok || existing == nil {
				target.DayCategories[key] = category.Clone()
				continue
			}
			existing.RoomPoints = clonePointsMap(category.RoomPoints)
		}
		updated++
	}
	return updated
}

// PropagateHolidayPoints copies the point table of the base year's holiday
// with the given dedup key into matching holidays in every other year.
// Returns the number of holidays updated.
func (r *Resort) PropagateHolidayPoints(baseYear, key string) int {
	source := r.FindHoliday(baseYear, key)
	if source == nil {
		return 0
	}
	updated := 0
	for year := range r.Years {
		if year == baseYear {
			continue
		}
		target := r.FindHoliday(year, key)
		if target == nil {
			continue
		}
		target.RoomPoints = clonePointsMap(source.RoomPoints)
		updated++
	}
	return updated
}
