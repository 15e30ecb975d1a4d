package department

import (
	"context"

	"github.com/google/uuid"

	"accessdesk/internal/domain"
	"accessdesk/internal/repository"
)

type Service interface {
	Create(ctx context.Context, input domain.CreateDepartmentInput) (*domain.Department, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Department], error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateDepartmentInput) (*domain.Department, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         repository.DepartmentRepository
	employeeRepo repository.EmployeeRepository
}

func NewService(repo repository.DepartmentRepository, employeeRepo repository.EmployeeRepository) Service {
	return &service{repo: repo, employeeRepo: employeeRepo}
}

func (s *service) Create(ctx context.Context, input domain.CreateDepartmentInput) (*domain.Department, error) {
	if input.DepartmentName == "" || input.DepartmentCode == "" {
		return nil, domain.NewValidationError("department name and code are required")
	}

	exists, err := s.repo.ExistsByCode(ctx, input.DepartmentCode, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflictError("department code %s is already in use", input.DepartmentCode)
	}

	if input.HeadOfDepartment != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *input.HeadOfDepartment); err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("invalid head of department: employee does not exist")
			}
			return nil, err
		}
	}

	dept := &domain.Department{
		ID:               uuid.New(),
		DepartmentName:   input.DepartmentName,
		DepartmentCode:   input.DepartmentCode,
		HeadOfDepartment: input.HeadOfDepartment,
		Description:      input.Description,
		IsActive:         true,
	}
	if input.IsActive != nil {
		dept.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Department], error) {
	departments, total, err := s.repo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Department]{}, err
	}
	return domain.NewPaginatedResponse(departments, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateDepartmentInput) (*domain.Department, error) {
	dept, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DepartmentCode != nil && *input.DepartmentCode != dept.DepartmentCode {
		exists, err := s.repo.ExistsByCode(ctx, *input.DepartmentCode, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewConflictError("department code %s is already in use", *input.DepartmentCode)
		}
		dept.DepartmentCode = *input.DepartmentCode
	}

	if input.DepartmentName != nil {
		dept.DepartmentName = *input.DepartmentName
	}
	if input.HeadOfDepartment != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *input.HeadOfDepartment); err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("invalid head of department: employee does not exist")
			}
			return nil, err
		}
		dept.HeadOfDepartment = input.HeadOfDepartment
	}
	if input.Description != nil {
		dept.Description = input.Description
	}
	if input.IsActive != nil {
		dept.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
