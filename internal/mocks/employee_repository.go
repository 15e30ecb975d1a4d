package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"accessdesk/internal/domain"
)

type EmployeeRepository struct {
	mock.Mock
}

func (m *EmployeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	args := m.Called(ctx, emp)
	return args.Error(0)
}

func (m *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *EmployeeRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Employee, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Employee), args.Get(1).(int64), args.Error(2)
}

func (m *EmployeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	args := m.Called(ctx, emp)
	return args.Error(0)
}

func (m *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EmployeeRepository) ExistsByEmailOrCode(ctx context.Context, email, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *EmployeeRepository) SetProfileImage(ctx context.Context, id uuid.UUID, url *string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}
