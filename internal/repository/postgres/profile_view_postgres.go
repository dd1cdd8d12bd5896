package postgres

import (
	"context"
	"database/sql"
	"errors"

	"profileviews/internal/model"
	"profileviews/internal/repository"
)

// ProfileViewPostgres is a PostgreSQL implementation of repository.ProfileViewRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ProfileViewPostgres struct {
	db *sql.DB
}

// NewProfileViewPostgres creates a new ProfileViewPostgres repository.
func NewProfileViewPostgres(db *sql.DB) *ProfileViewPostgres {
	return &ProfileViewPostgres{db: db}
}

var _ repository.ProfileViewRepository = (*ProfileViewPostgres)(nil)

const profileViewColumns = `id, viewer_user_id, viewer_company_page_url, viewer_company_name_raw, viewed_at_raw, viewed_at, raw_json, created_at`

// Upsert relies on the (viewer_user_id, viewed_at) unique constraint so that
// concurrent importers of the same key serialize inside PostgreSQL.
func (r *ProfileViewPostgres) Upsert(ctx context.Context, rec *model.NewProfileViewRaw) (int64, error) {
	const q = `
		INSERT INTO wantedly_profile_view_raw (
			viewer_user_id,
			viewer_company_page_url,
			viewer_company_name_raw,
			viewed_at_raw,
			viewed_at,
			raw_json
		)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)
		ON CONFLICT (viewer_user_id, viewed_at) DO UPDATE SET
			viewer_company_page_url = EXCLUDED.viewer_company_page_url,
			viewer_company_name_raw = EXCLUDED.viewer_company_name_raw,
			viewed_at_raw = EXCLUDED.viewed_at_raw,
			raw_json = EXCLUDED.raw_json
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		rec.ViewerUserID,
		nullableString(rec.ViewerCompanyPageURL),
		nullableString(rec.ViewerCompanyNameRaw),
		rec.ViewedAtRaw,
		rec.ViewedAt,
		string(rec.RawJSON),
	).Scan(&id)
	if err != nil {
		return 0, &repository.StorageError{Op: "upsert profile view", Err: err}
	}
	return id, nil
}

// FindByID fetches a single record by its ID. A missing row is reported as sql.ErrNoRows.
func (r *ProfileViewPostgres) FindByID(ctx context.Context, id int64) (*model.ProfileViewRaw, error) {
	q := `SELECT ` + profileViewColumns + ` FROM wantedly_profile_view_raw WHERE id = $1`
	pv, err := scanProfileView(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, &repository.StorageError{Op: "find profile view", Err: err}
	}
	return pv, nil
}

// List returns records using LIMIT/OFFSET pagination and a total count.
func (r *ProfileViewPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ProfileViewRaw], error) {
	const qCount = `SELECT COUNT(*) FROM wantedly_profile_view_raw`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, &repository.StorageError{Op: "count profile views", Err: err}
	}

	qList := `SELECT ` + profileViewColumns + ` FROM wantedly_profile_view_raw
		ORDER BY viewed_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, &repository.StorageError{Op: "list profile views", Err: err}
	}
	defer rows.Close()

	items := make([]model.ProfileViewRaw, 0)
	for rows.Next() {
		pv, err := scanProfileView(rows)
		if err != nil {
			return nil, &repository.StorageError{Op: "list profile views", Err: err}
		}
		items = append(items, *pv)
	}
	if err := rows.Err(); err != nil {
		return nil, &repository.StorageError{Op: "list profile views", Err: err}
	}

	return &repository.PageResult[model.ProfileViewRaw]{
		Items: items,
		Total: total,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfileView(row rowScanner) (*model.ProfileViewRaw, error) {
	var (
		pv  model.ProfileViewRaw
		raw []byte
	)
	if err := row.Scan(
		&pv.ID,
		&pv.ViewerUserID,
		&pv.ViewerCompanyPageURL,
		&pv.ViewerCompanyNameRaw,
		&pv.ViewedAtRaw,
		&pv.ViewedAt,
		&raw,
		&pv.CreatedAt,
	); err != nil {
		return nil, err
	}
	pv.RawJSON = raw
	return &pv, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
