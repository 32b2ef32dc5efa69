package points

// SchemaVersion is the document format revision written by this editor.
// Loading accepts any non-empty value; the field is a round-trip contract
// rather than a compatibility gate.
const SchemaVersion = "2"

// Document is the root container for every resort configuration managed by
// the editor. Resort order is display order only and carries no meaning.
type Document struct {
	SchemaVersion  string                     `json:"schema_version"`
	Resorts        []*Resort                  `json:"resorts"`
	GlobalHolidays map[string][]GlobalHoliday `json:"global_holidays"`
	Configuration  Configuration              `json:"configuration"`
}

// Configuration holds document-wide settings that are not tied to a resort.
type Configuration struct {
	MaintenanceRates map[string]float64 `json:"maintenance_rates"`
}

// GlobalHoliday is a dated holiday entry shared by all resorts for one year.
type GlobalHoliday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// Resort is one property's full pricing configuration. ID is immutable once
// created and must match ^[a-z0-9-]+$.
type Resort struct {
	ID          string           `json:"id"`
	DisplayName string           `json:"display_name"`
	Code        string           `json:"code"`
	ResortName  string           `json:"resort_name"`
	Address     string           `json:"address"`
	Timezone    string           `json:"timezone"`
	Years       map[string]*Year `json:"years"`
}

// Year groups the seasons and holidays configured for one calendar year.
type Year struct {
	Seasons  []*Season  `json:"seasons"`
	Holidays []*Holiday `json:"holidays"`
}

// Season is a named stretch of the year with per-day-category point tables.
type Season struct {
	Name          string                  `json:"name"`
	Periods       []Period                `json:"periods"`
	DayCategories map[string]*DayCategory `json:"day_categories"`
}

// Period is an inclusive date range in YYYY-MM-DD form. End >= Start is a
// caller convention, not enforced here.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayCategory maps a weekday pattern to per-room nightly points. Patterns may
// contain duplicates or unknown tokens from user input; both are tolerated.
// A nil points value means "no value", distinct from an explicit zero.
type DayCategory struct {
	DayPattern []string        `json:"day_pattern"`
	RoomPoints map[string]*int `json:"room_points"`
}

// Holiday is a holiday-week point override. GlobalReference links the entry
// to a global holiday by name and wins over Name as the dedup key.
type Holiday struct {
	Name            string          `json:"name"`
	GlobalReference string          `json:"global_reference,omitempty"`
	RoomPoints      map[string]*int `json:"room_points"`
}

// Default day categories populated into a season that has none.
const (
	CategorySunThu = "sun_thu"
	CategoryFriSat = "fri_sat"
)

// NewDocument returns an empty document carrying the current schema version.
func NewDocument() *Document {
	return &Document{
		SchemaVersion:  SchemaVersion,
		Resorts:        []*Resort{},
		GlobalHolidays: map[string][]GlobalHoliday{},
		Configuration:  Configuration{MaintenanceRates: map[string]float64{}},
	}
}

// EnsureYear returns the resort's Year for the given key, creating an empty
// one on first access.
func (r *Resort) EnsureYear(year string) *Year {
	if r.Years == nil {
		r.Years = make(map[string]*Year)
	}
	y, ok := r.Years[year]
	if !ok || y == nil {
		y = &Year{Seasons: []*Season{}, Holidays: []*Holiday{}}
		r.Years[year] = y
	}
	return y
}

// Key returns the identity used to dedup holidays: the global reference when
// present, otherwise the display name.
func (h *Holiday) Key() string {
	if h == nil {
		return ""
	}
	if h.GlobalReference != "" {
		return h.GlobalReference
	}
	return h.Name
}

// Clone returns a deep copy of the document. The copy shares no mutable state
// with the original.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	clone := &Document{
		SchemaVersion: d.SchemaVersion,
		Configuration: Configuration{MaintenanceRates: cloneFloatMap(d.Configuration.MaintenanceRates)},
	}
	if d.Resorts != nil {
		clone.Resorts = make([]*Resort, 0, len(d.Resorts))
		for _, resort := range d.Resorts {
			clone.Resorts = append(clone.Resorts, resort.Clone())
		}
	}
	if d.GlobalHolidays != nil {
		clone.GlobalHolidays = make(map[string][]GlobalHoliday, len(d.GlobalHolidays))
		for year, holidays := range d.GlobalHolidays {
			if holidays == nil {
				clone.GlobalHolidays[year] = nil
				continue
			}
			copied := make([]GlobalHoliday, len(holidays))
			copy(copied, holidays)
			clone.GlobalHolidays[year] = copied
		}
	}
	return clone
}

// Clone returns a deep copy of the resort.
func (r *Resort) Clone() *Resort {
	if r == nil {
		return nil
	}
	clone := &Resort{
		ID:          r.ID,
		DisplayName: r.DisplayName,
		Code:        r.Code,
		ResortName:  r.ResortName,
		Address:     r.Address,
		Timezone:    r.Timezone,
	}
	if r.Years != nil {
		clone.Years = make(map[string]*Year, len(r.Years))
		for key, year := range r.Years {
			clone.Years[key] = year.Clone()
		}
	}
	return clone
}

// Clone returns a deep copy of the year.
func (y *Year) Clone() *Year {
	if y == nil {
		return nil
	}
	clone := &Year{}
	if y.Seasons != nil {
		clone.Seasons = make([]*Season, 0, len(y.Seasons))
		for _, season := range y.Seasons {
			clone.Seasons = append(clone.Seasons, season.Clone())
		}
	}
	if y.Holidays != nil {
		clone.Holidays = make([]*Holiday, 0, len(y.Holidays))
		for _, holiday := range y.Holidays {
			clone.Holidays = append(clone.Holidays, holiday.Clone())
		}
	}
	return clone
}

// Clone returns a deep copy of the season.
func (s *Season) Clone() *Season {
	if s == nil {
		return nil
	}
	clone := &Season{Name: s.Name}
	if s.Periods != nil {
		clone.Periods = make([]Period, len(s.Periods))
		copy(clone.Periods, s.Periods)
	}
	if s.DayCategories != nil {
		clone.DayCategories = make(map[string]*DayCategory, len(s.DayCategories))
		for key, category := range s.DayCategories {
			clone.DayCategories[key] = category.Clone()
		}
	}
	return clone
}

// Clone returns a deep copy of the day category.
func (c *DayCategory) Clone() *DayCategory {
	if c == nil {
		return nil
	}
	clone := &DayCategory{}
	if c.DayPattern != nil {
		clone.DayPattern = make([]string, len(c.DayPattern))
		copy(clone.DayPattern, c.DayPattern)
	}
	clone.RoomPoints = clonePointsMap(c.RoomPoints)
	return clone
}

// Clone returns a deep copy of the holiday.
func (h *Holiday) Clone() *Holiday {
	if h == nil {
		return nil
	}
	return &Holiday{
		Name:            h.Name,
		GlobalReference: h.GlobalReference,
		RoomPoints:      clonePointsMap(h.RoomPoints),
	}
}

func clonePointsMap(points map[string]*int) map[string]*int {
	if points == nil {
		return nil
	}
	clone := make(map[string]*int, len(points))
	for room, value := range points {
		if value == nil {
			clone[room] = nil
			continue
		}
		copied := *value
		clone[room] = &copied
	}
	return clone
}

func cloneFloatMap(rates map[string]float64) map[string]float64 {
	if rates == nil {
		return nil
	}
	clone := make(map[string]float64, len(rates))
	for year, rate := range rates {
		clone[year] = rate
	}
	return clone
}

// IntPtr returns a pointer to v. Convenience for building point tables.
func IntPtr(v int) *int {
	return &v
}
