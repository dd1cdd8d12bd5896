package repository

import (
	"context"

	"profileviews/internal/model"
)

// ProfileViewRepository persists raw profile-view records.
// No business logic here, strictly persistence operations.
type ProfileViewRepository interface {
	// Upsert inserts rec, or overwrites the non-key fields of the row sharing its
	// (ViewerUserID, ViewedAt) key, in one atomic statement. It returns the row ID,
	// which is stable across repeated upserts of the same key.
	Upsert(ctx context.Context, rec *model.NewProfileViewRaw) (int64, error)

	// FindByID returns a record by its ID.
	FindByID(ctx context.Context, id int64) (*model.ProfileViewRaw, error)

	// List returns a page of records, most recent view first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.ProfileViewRaw], error)
}
