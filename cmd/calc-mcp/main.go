package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/history"
	"go-chi-calculator/internal/mcptools"
	"go-chi-calculator/internal/observability"
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

	// stdout carries the MCP protocol.
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

	calc := mcptools.NewCalculator(engine.New(cfg.Engine), recorder)
	s := mcptools.NewServer(calc)

	observability.Logger.Info("mcp server starting on stdio", zap.String("history_db", cfg.HistoryDB))
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}
	return nil
}
