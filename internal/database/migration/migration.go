package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"profileviews/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_wantedly_profile_view_raw",
		SQL: `CREATE TABLE IF NOT EXISTS wantedly_profile_view_raw (
  id                      BIGSERIAL   PRIMARY KEY,
  viewer_user_id          TEXT        NOT NULL,
  viewer_company_page_url TEXT,
  viewer_company_name_raw TEXT,
  viewed_at_raw           TEXT        NOT NULL,
  viewed_at               TIMESTAMPTZ NOT NULL,
  raw_json                JSONB       NOT NULL,
  created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT uq_wantedly_profile_view_raw_viewer_viewed_at UNIQUE (viewer_user_id, viewed_at)
);`,
	},
	{
		Name: "create_index_wantedly_profile_view_raw_viewed_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_wantedly_profile_view_raw_viewed_at ON wantedly_profile_view_raw (viewed_at);`,
	},
	{
		Name: "create_index_wantedly_profile_view_raw_company_page_url",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_wantedly_profile_view_raw_company_page_url ON wantedly_profile_view_raw (viewer_company_page_url);`,
	},
}

// EnsureMigrated checks if the 'wantedly_profile_view_raw' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logger.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	query := "SELECT to_regclass('public.wantedly_profile_view_raw') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"msg", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
