package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"profileviews/internal/config"
	"profileviews/internal/database"
	"profileviews/internal/database/migration"
	"profileviews/internal/logger"
	"profileviews/internal/repository/postgres"
	"profileviews/internal/service"
	"profileviews/internal/storage"
)

// app holds the dependencies shared by every subcommand.
type app struct {
	cfg      *config.AppConfig
	log      *logger.Logger
	loc      *time.Location
	db       *sql.DB
	importer service.ImportService
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	loc, err := cfg.Snapshot.Location()
	if err != nil {
		return nil, err
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var archive storage.Storage
	if cfg.ArchiveEnabled() {
		archive, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("init object storage: %w", err)
		}
	}

	repo := postgres.NewProfileViewPostgres(db)
	return &app{
		cfg:      cfg,
		log:      log,
		loc:      loc,
		db:       db,
		importer: service.NewImportService(repo, archive, loc, nil, log),
	}, nil
}

func (a *app) Close() {
	a.db.Close()
	a.log.Sync()
}

// report prints one line per snapshot and a total.
func report(w io.Writer, results []service.SnapshotResult) {
	total := 0
	for _, r := range results {
		total += r.Imported
		if r.Err != nil {
			fmt.Fprintf(w, "%s: %d records imported, failed: %v\n", r.Name, r.Imported, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s: %d records imported\n", r.Name, r.Imported)
	}
	fmt.Fprintf(w, "%d records imported\n", total)
}
