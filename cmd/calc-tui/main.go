package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/history"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// stdout belongs to the terminal UI.
	if err := observability.InitFileLogger(cfg.LogFile); err != nil {
		return err
	}
	defer observability.SyncLogger()

	var recorder history.Recorder = history.Nop{}
	if cfg.HistoryDB != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
		recorder = store
	}

	observability.Logger.Info("terminal calculator started", zap.String("history_db", cfg.HistoryDB))

	model := tui.New(engine.New(cfg.Engine), recorder)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
