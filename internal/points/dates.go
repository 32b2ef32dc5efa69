package points

import "time"

// Weekday tokens accepted in day patterns and period boundaries.
var weekdayTokens = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

// IsWeekdayToken reports whether tok is one of the recognized three-letter
// weekday names.
func IsWeekdayToken(tok string) bool {
	_, ok := weekdayTokens[tok]
	return ok
}

// ValidDayCount counts the recognized weekday tokens in pattern. Duplicate
// tokens count each time they appear; unknown tokens are ignored.
func ValidDayCount(pattern []string) int {
	count := 0
	for _, tok := range pattern {
		if IsWeekdayToken(tok) {
			count++
		}
	}
	return count
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses a date string in any of the accepted layouts. The second
// return value is false when no layout matches.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders t in the canonical YYYY-MM-DD layout used throughout
// the document.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
