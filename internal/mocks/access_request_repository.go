package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"accessdesk/internal/domain"
	"accessdesk/internal/repository"
)

type AccessRequestRepository struct {
	mock.Mock
}

func (m *AccessRequestRepository) Create(ctx context.Context, req *domain.AccessRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *AccessRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}

func (m *AccessRequestRepository) List(ctx context.Context, filter repository.AccessRequestFilter, params domain.PaginationParams) ([]domain.AccessRequest, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.AccessRequest), args.Get(1).(int64), args.Error(2)
}

func (m *AccessRequestRepository) Update(ctx context.Context, req *domain.AccessRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *AccessRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AccessRequestRepository) ApplySupervisorDecision(ctx context.Context, requestID uuid.UUID, entry domain.SupervisorApproval) (*domain.AccessRequest, error) {
	args := m.Called(ctx, requestID, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}

func (m *AccessRequestRepository) ApplyGrants(ctx context.Context, requestID uuid.UUID, grants []domain.PermissionGrant) (*domain.AccessRequest, error) {
	args := m.Called(ctx, requestID, grants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}

func (m *AccessRequestRepository) RejectByIT(ctx context.Context, requestID uuid.UUID) (*domain.AccessRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessRequest), args.Error(1)
}

func (m *AccessRequestRepository) ExpireDue(ctx context.Context, now time.Time) ([]domain.AccessRequest, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccessRequest), args.Error(1)
}

func (m *AccessRequestRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AccessRequestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.RequestStatus]int64), args.Error(1)
}

func (m *AccessRequestRepository) MostRequestedSystems(ctx context.Context, limit int) ([]repository.SystemRequestCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SystemRequestCount), args.Error(1)
}
