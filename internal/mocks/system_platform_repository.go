package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"accessdesk/internal/domain"
)

type SystemPlatformRepository struct {
	mock.Mock
}

func (m *SystemPlatformRepository) Create(ctx context.Context, sys *domain.SystemPlatform) error {
	args := m.Called(ctx, sys)
	return args.Error(0)
}

func (m *SystemPlatformRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SystemPlatform, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemPlatform), args.Error(1)
}

func (m *SystemPlatformRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.SystemPlatform, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.SystemPlatform), args.Get(1).(int64), args.Error(2)
}

func (m *SystemPlatformRepository) Update(ctx context.Context, sys *domain.SystemPlatform) error {
	args := m.Called(ctx, sys)
	return args.Error(0)
}

func (m *SystemPlatformRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
