package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"EDITOR_HTTP_PORT",
			"EDITOR_SQLITE_DSN",
			"EDITOR_SESSION_TTL",
			"EDITOR_BASE_YEAR",
			"EDITOR_DEFAULT_YEARS",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		const hash = "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"
		t.Setenv("EDITOR_PASSWORD_HASH", hash)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:editor.db?_foreign_keys=on" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.PasswordHash != hash {
			t.Fatalf("expected password hash to be %q, got %q", hash, cfg.PasswordHash)
		}
		if cfg.BaseYear != "2025" {
			t.Fatalf("expected default base year 2025, got %q", cfg.BaseYear)
		}
		if !reflect.DeepEqual(cfg.DefaultYears, []string{"2025", "2026"}) {
			t.Fatalf("unexpected default years: %v", cfg.DefaultYears)
		}
	})

	t.Run("errors when required values are missing", func(t *testing.T) {
		for _, key := range []string{
			"EDITOR_PASSWORD_HASH",
			"EDITOR_HTTP_PORT",
			"EDITOR_SQLITE_DSN",
		} {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error when required values are missing")
		}
		expected := "required environment variables are not set: EDITOR_PASSWORD_HASH"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("parses duration, numeric, and list fields", func(t *testing.T) {
		t.Setenv("EDITOR_PASSWORD_HASH", "hash-value")
		t.Setenv("EDITOR_HTTP_PORT", "9090")
		t.Setenv("EDITOR_SQLITE_DSN", "file:/tmp/editor.db")
		t.Setenv("EDITOR_SESSION_TTL", "12h")
		t.Setenv("EDITOR_BASE_YEAR", "2026")
		t.Setenv("EDITOR_DEFAULT_YEARS", "2026, 2027,2028")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.SessionTTL != 12*time.Hour {
			t.Fatalf("expected session TTL 12h, got %s", cfg.SessionTTL)
		}
		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:/tmp/editor.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.BaseYear != "2026" {
			t.Fatalf("expected base year 2026, got %q", cfg.BaseYear)
		}
		if !reflect.DeepEqual(cfg.DefaultYears, []string{"2026", "2027", "2028"}) {
			t.Fatalf("unexpected years: %v", cfg.DefaultYears)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Setenv("EDITOR_PASSWORD_HASH", "hash-value")
		t.Setenv("EDITOR_SESSION_TTL", "not-a-duration")
		t.Setenv("EDITOR_DEFAULT_YEARS", "next year")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		expected := "environment variables carry invalid values: EDITOR_SESSION_TTL, EDITOR_DEFAULT_YEARS"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})
}
