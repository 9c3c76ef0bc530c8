package app

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/boardpulse/config"
	"github.com/guttosm/boardpulse/internal/cli"
	"github.com/guttosm/boardpulse/internal/service"
	"github.com/guttosm/boardpulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns the
// command services, a cleanup function, and any error encountered during
// initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres() when LADDER_SOURCE is postgres.
//   - Builds the dataset loader for the configured source.
//   - Wraps it in a Store so the dataset is read at most once per process.
//   - Creates the engines on top of the Store.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// The dataset itself is loaded lazily by the first command that needs it,
// so a missing file is reported by that command, not here.
//
// Returns:
//   - *cli.Services: engines plus display defaults.
//   - func(): cleanup function to be executed on exit.
//   - error: any initialization error that occurred.
func InitializeApp() (*cli.Services, func(), error) {
	cfg := config.AppConfig

	var db *sql.DB
	if cfg.UsesPostgres() {
		var err error
		// indirection for unit testing
		db, err = postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
	}

	cleanup := func() {
		if db != nil {
			_ = db.Close()
		}
	}

	loader, err := storage.NewLoader(storage.Options{
		Source: storage.Source(cfg.Ladder.Source),
		Path:   cfg.Ladder.File,
		Sheet:  cfg.Ladder.Sheet,
		Table:  cfg.Ladder.Table,
		DB:     db,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize ladder source: %w", err)
	}

	store := storage.NewStore(loader)

	svc := &cli.Services{
		Query:        service.NewQueryService(store),
		Search:       service.NewSearchService(store),
		Stats:        service.NewStatsService(store),
		Trend:        service.NewTrendService(store),
		Export:       service.NewExportService(store),
		Sessions:     service.NewSessionService(store),
		DisplayLimit: cfg.Display.Limit,
		TrendDays:    cfg.Display.TrendDays,
	}
	return svc, cleanup, nil
}
