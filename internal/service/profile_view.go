package service

import (
	"context"
	"database/sql"
	"errors"

	"profileviews/internal/model"
	"profileviews/internal/repository"
)

var (
	ErrInvalidID = errors.New("id must be positive")
	ErrNotFound  = errors.New("profile view not found")
)

// ProfileViewListResult is the service-level DTO for paginated profile views.
type ProfileViewListResult struct {
	Items []model.ProfileViewRaw `json:"data"`
	Total int                    `json:"total"`
}

// ProfileViewService exposes stored profile views for reading.
type ProfileViewService interface {
	// List returns profile views using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*ProfileViewListResult, error)

	// Get returns a single profile view by its ID.
	Get(ctx context.Context, id int64) (*model.ProfileViewRaw, error)
}

type profileViewService struct {
	repo repository.ProfileViewRepository
}

// NewProfileViewService constructs a new ProfileViewService.
func NewProfileViewService(repo repository.ProfileViewRepository) ProfileViewService {
	return &profileViewService{repo: repo}
}

func (s *profileViewService) List(ctx context.Context, limit, offset int) (*ProfileViewListResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ProfileViewListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *profileViewService) Get(ctx context.Context, id int64) (*model.ProfileViewRaw, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	pv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return pv, nil
}
