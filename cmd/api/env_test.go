package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnvFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.env")
	if err := os.WriteFile(path, []byte("SESSION_TTL=7m\nHTTP_ADDR=:9999\n"), 0o600); err != nil {
		t.Fatalf("writing env file: %v", err)
	}

	t.Setenv("ENV_FILE", path)
	t.Setenv("SESSION_TTL", "")
	os.Unsetenv("SESSION_TTL")
	t.Setenv("HTTP_ADDR", ":8081")

	if err := loadDotEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := os.Getenv("SESSION_TTL"); got != "7m" {
		t.Fatalf("expected SESSION_TTL from file, got %q", got)
	}
	if got := os.Getenv("HTTP_ADDR"); got != ":8081" {
		t.Fatalf("expected process env to win, got %q", got)
	}
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	if err := loadDotEnv(); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}
