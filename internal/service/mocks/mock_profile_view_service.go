package mocks

import (
	"context"

	"profileviews/internal/model"
	"profileviews/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockProfileViewService struct {
	mock.Mock
}

func (m *MockProfileViewService) List(ctx context.Context, limit, offset int) (*service.ProfileViewListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProfileViewListResult), args.Error(1)
}

func (m *MockProfileViewService) Get(ctx context.Context, id int64) (*model.ProfileViewRaw, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileViewRaw), args.Error(1)
}
