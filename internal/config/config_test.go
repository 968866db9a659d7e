package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-chi-calculator/internal/engine"
)

func lookup(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookup(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("expected addr %q, got %q", ":8080", cfg.Addr)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected ttl 30m, got %s", cfg.SessionTTL)
	}
	if cfg.Engine != engine.DefaultOptions() {
		t.Fatalf("expected default engine options, got %+v", cfg.Engine)
	}
	if !cfg.TelemetryEnabled || cfg.ExportLogs {
		t.Fatalf("unexpected telemetry flags %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"CALC_ADDR":             ":9090",
		"CALC_HISTORY_DB":       "/tmp/calc.db",
		"CALC_SESSION_TTL":      "5m",
		"CALC_RETAIN_HISTORY":   "false",
		"CALC_REPEAT_EQUALS":    "0",
		"CALC_SOFT_CLEAR":       "true",
		"CALC_OPERATOR_REPRESS": "append",
		"OTEL_SDK_DISABLED":     "true",
		"OTEL_LOGS_ENABLED":     "true",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := engine.Options{
		RetainHistory: false,
		RepeatEquals:  false,
		Repress:       engine.RepressAppend,
		SoftClear:     true,
	}
	if cfg.Engine != want {
		t.Fatalf("expected engine options %+v, got %+v", want, cfg.Engine)
	}
	if cfg.Addr != ":9090" || cfg.HistoryDB != "/tmp/calc.db" || cfg.SessionTTL != 5*time.Minute {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.TelemetryEnabled || !cfg.ExportLogs {
		t.Fatalf("unexpected telemetry flags %+v", cfg)
	}
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"CALC_SESSION_TTL":      "soon",
		"CALC_RETAIN_HISTORY":   "maybe",
		"CALC_OPERATOR_REPRESS": "merge",
		"OTEL_SDK_DISABLED":     "nah",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			if _, err := FromEnv(lookup(map[string]string{key: value})); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}

	if _, err := FromEnv(lookup(map[string]string{"CALC_SESSION_TTL": "-1m"})); err == nil {
		t.Fatal("expected error for negative ttl")
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CALC_ADDR=:7070\nCALC_SOFT_CLEAR=true\n"), 0o644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("CALC_SOFT_CLEAR", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("CALC_ADDR") })

	if cfg.Addr != ":7070" {
		t.Fatalf("expected addr from .env, got %q", cfg.Addr)
	}
	if cfg.Engine.SoftClear {
		t.Fatal("expected process environment to win over .env")
	}
}
