package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/history"
	"go-chi-calculator/internal/observability"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments. Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

// initTelemetry starts tracing, metrics and, when asked, OTLP log export.
// The returned shutdown flushes every provider that was started.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	if !cfg.TelemetryEnabled {
		// Instruments still need to exist; they bind to the no-op provider.
		if err := calculator.InitMetrics(); err != nil {
			return nil, err
		}
		return func(context.Context) error { return nil }, nil
	}

	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		return nil, err
	}
	shutdowns = append(shutdowns, traceShutdown)

	metricShutdown, err := initMetrics(ctx)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	shutdowns = append(shutdowns, metricShutdown)

	if cfg.ExportLogs {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, logShutdown)
	}

	return shutdown, nil
}

// openHistory returns the SQLite-backed recorder, or a no-op one when no
// database path is configured.
func openHistory(path string) (history.Recorder, func() error, error) {
	if path == "" {
		observability.Logger.Info("calculation history disabled")
		return history.Nop{}, func() error { return nil }, nil
	}

	store, err := history.Open(path)
	if err != nil {
		return nil, nil, err
	}

	observability.Logger.Info("calculation history enabled", zap.String("path", path))
	return store, store.Close, nil
}
