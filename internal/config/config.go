// Package config reads process configuration from the environment, with
// an optional .env file underneath it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"go-chi-calculator/internal/engine"
)

type Config struct {
	Addr       string
	HistoryDB  string
	SessionTTL time.Duration
	LogFile    string

	// TelemetryEnabled turns on the OTLP trace and metric exporters.
	TelemetryEnabled bool
	// ExportLogs additionally ships logs over OTLP.
	ExportLogs bool

	Engine engine.Options
}

// Load reads .env (if present) and then the environment. Variables already
// set in the process win over .env.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:      envString(getenv, "CALC_ADDR", ":8080"),
		HistoryDB: getenv("CALC_HISTORY_DB"),
		LogFile:   getenv("CALC_LOG_FILE"),
		Engine:    engine.DefaultOptions(),
	}

	var err error
	var errs []error

	if cfg.SessionTTL, err = envDuration(getenv, "CALC_SESSION_TTL", 30*time.Minute); err != nil {
		errs = append(errs, err)
	}
	if cfg.Engine.RetainHistory, err = envBool(getenv, "CALC_RETAIN_HISTORY", cfg.Engine.RetainHistory); err != nil {
		errs = append(errs, err)
	}
	if cfg.Engine.RepeatEquals, err = envBool(getenv, "CALC_REPEAT_EQUALS", cfg.Engine.RepeatEquals); err != nil {
		errs = append(errs, err)
	}
	if cfg.Engine.SoftClear, err = envBool(getenv, "CALC_SOFT_CLEAR", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.Engine.Repress, err = engine.ParseRepressPolicy(getenv("CALC_OPERATOR_REPRESS")); err != nil {
		errs = append(errs, fmt.Errorf("CALC_OPERATOR_REPRESS: %w", err))
	}

	sdkDisabled, err := envBool(getenv, "OTEL_SDK_DISABLED", false)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.TelemetryEnabled = !sdkDisabled

	if cfg.ExportLogs, err = envBool(getenv, "OTEL_LOGS_ENABLED", false); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

func envString(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(getenv func(string) string, key string, def bool) (bool, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func envDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return def, fmt.Errorf("%s: must be positive, got %s", key, d)
	}
	return d, nil
}
