package points

import (
	"sort"
	"strings"
)

// US timezones in west-to-east order for resort listings.
var timezoneOrder = map[string]int{
	"Pacific/Honolulu":    0,
	"America/Anchorage":   1,
	"America/Los_Angeles": 2,
	"America/Phoenix":     3,
	"America/Denver":      4,
	"America/Chicago":     5,
	"America/New_York":    6,
}

func timezoneRank(tz string) int {
	if rank, ok := timezoneOrder[tz]; ok {
		return rank
	}
	return len(timezoneOrder)
}

// SortResortsWestToEast orders resorts by timezone from west to east.
// Resorts with an unrecognized timezone sort after the known ones; ties
// break on display name, case-insensitively. The input slice is not
// modified.
func SortResortsWestToEast(resorts []*Resort) []*Resort {
	sorted := append([]*Resort(nil), resorts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		ra, rb := timezoneRank(a.Timezone), timezoneRank(b.Timezone)
		if ra != rb {
			return ra < rb
		}
		return strings.ToLower(a.DisplayName) < strings.ToLower(b.DisplayName)
	})
	return sorted
}
