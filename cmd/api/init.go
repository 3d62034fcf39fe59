package main

import (
	"context"
	"errors"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/observability"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments, and exposes the session count for scraping.
func initMetrics(ctx context.Context, store *calculator.Store) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}

	if err := calculator.RegisterSessionCollector(observability.Registry, store); err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}

	return shutdown, nil
}
