package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/stint/internal/cli"
	"github.com/rpggio/stint/internal/clock"
	"github.com/rpggio/stint/internal/config"
	"github.com/rpggio/stint/internal/repository"
	"github.com/rpggio/stint/internal/sqlite"
	"github.com/rpggio/stint/internal/yamlstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr: in mcp mode stdout carries JSON-RPC, and in CLI
	// mode stdout is for command output.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	cli.Execute(&cli.App{
		Store:  store,
		Clock:  clock.System(),
		Logger: logger,
	})
}

func openStore(cfg config.Config) (repository.Store, error) {
	switch cfg.Data.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		db, err := sqlite.New(filepath.Join(cfg.Data.Dir, "stint.db"))
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(); err != nil {
			return nil, err
		}
		return sqlite.NewStore(db), nil
	default:
		return yamlstore.New(cfg.Data.Dir)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
