package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the points
// editor service.
type Config struct {
	HTTPPort     int
	SQLiteDSN    string
	PasswordHash string
	SessionTTL   time.Duration
	BaseYear     string
	DefaultYears []string
}

// Load parses configuration values from the current process environment.
//
// The loader applies sensible defaults for optional fields while validating
// required values and reporting every missing or invalid entry at once.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:     8080,
		SQLiteDSN:    "file:editor.db?_foreign_keys=on",
		SessionTTL:   24 * time.Hour,
		BaseYear:     "2025",
		DefaultYears: []string{"2025", "2026"},
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("EDITOR_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "EDITOR_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("EDITOR_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if hash := strings.TrimSpace(os.Getenv("EDITOR_PASSWORD_HASH")); hash == "" {
		missing = append(missing, "EDITOR_PASSWORD_HASH")
	} else {
		cfg.PasswordHash = hash
	}

	if ttlValue := strings.TrimSpace(os.Getenv("EDITOR_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "EDITOR_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if baseYear := strings.TrimSpace(os.Getenv("EDITOR_BASE_YEAR")); baseYear != "" {
		if _, err := strconv.Atoi(baseYear); err != nil {
			invalid = append(invalid, "EDITOR_BASE_YEAR")
		} else {
			cfg.BaseYear = baseYear
		}
	}

	if yearsValue := strings.TrimSpace(os.Getenv("EDITOR_DEFAULT_YEARS")); yearsValue != "" {
		years, err := parseYearList(yearsValue)
		if err != nil {
			invalid = append(invalid, "EDITOR_DEFAULT_YEARS")
		} else {
			cfg.DefaultYears = years
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables carry invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// parseYearList splits a comma separated list of years, rejecting entries
// that are not plain integers.
func parseYearList(value string) ([]string, error) {
	parts := strings.Split(value, ",")
	years := make([]string, 0, len(parts))
	for _, part := range parts {
		year := strings.TrimSpace(part)
		if year == "" {
			continue
		}
		if _, err := strconv.Atoi(year); err != nil {
			return nil, fmt.Errorf("invalid year %q", year)
		}
		years = append(years, year)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no years in %q", value)
	}
	return years, nil
}
