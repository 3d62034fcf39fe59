package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// loadDotEnv loads environment variables from .env, or from the
// comma-separated files named in ENV_FILE. A missing file is not an error.
// Existing process environment variables are not overridden.
func loadDotEnv() error {
	var files []string
	if v := os.Getenv("ENV_FILE"); v != "" {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				files = append(files, f)
			}
		}
	}

	err := godotenv.Load(files...)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}
