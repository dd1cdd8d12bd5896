package migration

import (
	"context"
	"errors"
	"testing"

	"profileviews/internal/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const sentinelQuery = `SELECT to_regclass\('public.wantedly_profile_view_raw'\) IS NOT NULL`

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("skips when table exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err = EnsureMigrated(ctx, db, logger.Nop(), "localhost")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("runs every step", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		core, logs := observer.New(zap.InfoLevel)

		mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS wantedly_profile_view_raw .+ UNIQUE \(viewer_user_id, viewed_at\)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_wantedly_profile_view_raw_viewed_at").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_wantedly_profile_view_raw_company_page_url").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = EnsureMigrated(ctx, db, logger.FromZap(zap.New(core)), "localhost")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Equal(t, 1, logs.FilterMessage("db_migration_success").Len())
		assert.Equal(t, len(steps), logs.FilterMessage("db_migration_step").Len())
	})

	t.Run("step failure stops migration", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(sentinelQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS wantedly_profile_view_raw").
			WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(ctx, db, logger.Nop(), "localhost")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "migration step create_table_wantedly_profile_view_raw failed")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sentinel check failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(sentinelQuery).WillReturnError(errors.New("no connection"))

		err = EnsureMigrated(ctx, db, logger.Nop(), "localhost")

		assert.ErrorContains(t, err, "failed to check sentinel table")
	})
}
