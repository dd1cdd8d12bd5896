package mocks

import (
	"context"
	"time"

	"profileviews/internal/snapshot"
	"profileviews/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Import(ctx context.Context, doc []byte, snapshotAt time.Time) (int, error) {
	args := m.Called(ctx, doc, snapshotAt)
	return args.Int(0), args.Error(1)
}

func (m *MockImportService) ImportSnapshot(ctx context.Context, snap *snapshot.Snapshot) (int, error) {
	args := m.Called(ctx, snap)
	return args.Int(0), args.Error(1)
}

func (m *MockImportService) ImportSnapshots(ctx context.Context, snaps []*snapshot.Snapshot, concurrency int) ([]service.SnapshotResult, error) {
	args := m.Called(ctx, snaps, concurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.SnapshotResult), args.Error(1)
}

func (m *MockImportService) ReimportArchived(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}
