package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"accessdesk/internal/domain"
)

type AccessTypeRepository struct {
	mock.Mock
}

func (m *AccessTypeRepository) Create(ctx context.Context, at *domain.AccessType) error {
	args := m.Called(ctx, at)
	return args.Error(0)
}

func (m *AccessTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessType), args.Error(1)
}

func (m *AccessTypeRepository) List(ctx context.Context, activeOnly bool, params domain.PaginationParams) ([]domain.AccessType, int64, error) {
	args := m.Called(ctx, activeOnly, params)
	return args.Get(0).([]domain.AccessType), args.Get(1).(int64), args.Error(2)
}

func (m *AccessTypeRepository) Update(ctx context.Context, at *domain.AccessType) error {
	args := m.Called(ctx, at)
	return args.Error(0)
}

func (m *AccessTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AccessTypeRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}
