package mocks

import (
	"context"

	"profileviews/internal/model"
	"profileviews/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockProfileViewRepository struct {
	mock.Mock
}

func (m *MockProfileViewRepository) Upsert(ctx context.Context, rec *model.NewProfileViewRaw) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileViewRepository) FindByID(ctx context.Context, id int64) (*model.ProfileViewRaw, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileViewRaw), args.Error(1)
}

func (m *MockProfileViewRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ProfileViewRaw], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ProfileViewRaw]), args.Error(1)
}
