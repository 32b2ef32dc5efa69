package points

import (
	"fmt"
	"strings"
	"unicode"
)

// GenerateResortID derives a URL-safe identifier from a display name:
// lowercase, with every run of characters outside [a-z0-9] collapsed to a
// single hyphen. Falls back to "resort" when nothing survives.
func GenerateResortID(displayName string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(displayName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if b.Len() > 0 && !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	id := strings.Trim(b.String(), "-")
	if id == "" {
		return "resort"
	}
	return id
}

// GenerateResortCode derives a short uppercase code from a display name: the
// first character of each of the first three whitespace-separated words.
// Falls back to "RST" when the name is blank.
func GenerateResortCode(displayName string) string {
	fields := strings.Fields(displayName)
	if len(fields) > 3 {
		fields = fields[:3]
	}
	var b strings.Builder
	for _, word := range fields {
		for _, r := range word {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	if b.Len() == 0 {
		return "RST"
	}
	return b.String()
}

// MakeUnique returns base unchanged when taken reports it free, otherwise the
// first "base-N" for N >= 2 that is free.
func MakeUnique(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !taken(candidate) {
			return candidate
		}
	}
}
