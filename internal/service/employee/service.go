package employee

import (
	"context"

	"github.com/google/uuid"

	"accessdesk/internal/domain"
	"accessdesk/internal/repository"
)

// Service manages employee records. Department and supervisor attributes are
// denormalized onto the employee at write time, mirroring how requests
// snapshot their references.
type Service interface {
	Create(ctx context.Context, input domain.CreateEmployeeInput) (*domain.Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Employee], error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateEmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo           repository.EmployeeRepository
	departmentRepo repository.DepartmentRepository
}

func NewService(repo repository.EmployeeRepository, departmentRepo repository.DepartmentRepository) Service {
	return &service{repo: repo, departmentRepo: departmentRepo}
}

func (s *service) Create(ctx context.Context, input domain.CreateEmployeeInput) (*domain.Employee, error) {
	if input.FullName == "" || input.Email == "" || input.EmployeeCode == "" {
		return nil, domain.NewValidationError("full name, email and employee code are required")
	}

	exists, err := s.repo.ExistsByEmailOrCode(ctx, input.Email, input.EmployeeCode, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflictError("an employee with this email or code already exists")
	}

	dept, err := s.departmentRepo.GetByID(ctx, input.DepartmentID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("invalid department reference: department does not exist")
		}
		return nil, err
	}

	emp := &domain.Employee{
		ID:             uuid.New(),
		FullName:       input.FullName,
		Email:          input.Email,
		Phone:          input.Phone,
		EmployeeCode:   input.EmployeeCode,
		JobTitle:       input.JobTitle,
		DepartmentID:   dept.ID,
		DepartmentName: &dept.DepartmentName,
		DepartmentCode: &dept.DepartmentCode,
		IsActive:       true,
		HireDate:       input.HireDate,
	}
	if input.IsActive != nil {
		emp.IsActive = *input.IsActive
	}

	if input.SupervisorID != nil {
		if err := s.applySupervisor(ctx, emp, *input.SupervisorID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *service) applySupervisor(ctx context.Context, emp *domain.Employee, supervisorID uuid.UUID) error {
	if supervisorID == emp.ID {
		return domain.NewValidationError("an employee cannot supervise themselves")
	}
	supervisor, err := s.repo.GetByID(ctx, supervisorID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.NewValidationError("invalid supervisor reference: employee does not exist")
		}
		return err
	}
	emp.SupervisorID = &supervisor.ID
	emp.SupervisorName = &supervisor.FullName
	emp.SupervisorEmail = &supervisor.Email
	emp.SupervisorJobTitle = supervisor.JobTitle
	return nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Employee], error) {
	employees, total, err := s.repo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Employee]{}, err
	}
	return domain.NewPaginatedResponse(employees, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateEmployeeInput) (*domain.Employee, error) {
	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := emp.Email
	if input.Email != nil {
		email = *input.Email
	}
	code := emp.EmployeeCode
	if input.EmployeeCode != nil {
		code = *input.EmployeeCode
	}
	if email != emp.Email || code != emp.EmployeeCode {
		exists, err := s.repo.ExistsByEmailOrCode(ctx, email, code, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewConflictError("an employee with this email or code already exists")
		}
		emp.Email = email
		emp.EmployeeCode = code
	}

	if input.FullName != nil {
		emp.FullName = *input.FullName
	}
	if input.Phone != nil {
		emp.Phone = input.Phone
	}
	if input.JobTitle != nil {
		emp.JobTitle = input.JobTitle
	}
	if input.DepartmentID != nil && *input.DepartmentID != emp.DepartmentID {
		dept, err := s.departmentRepo.GetByID(ctx, *input.DepartmentID)
		if err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("invalid department reference: department does not exist")
			}
			return nil, err
		}
		emp.DepartmentID = dept.ID
		emp.DepartmentName = &dept.DepartmentName
		emp.DepartmentCode = &dept.DepartmentCode
	}

	// Double pointer: outer nil leaves the supervisor untouched, inner nil
	// clears it.
	if input.SupervisorID != nil {
		if *input.SupervisorID == nil {
			emp.SupervisorID = nil
			emp.SupervisorName = nil
			emp.SupervisorEmail = nil
			emp.SupervisorJobTitle = nil
		} else if err := s.applySupervisor(ctx, emp, **input.SupervisorID); err != nil {
			return nil, err
		}
	}

	if input.IsActive != nil {
		emp.IsActive = *input.IsActive
	}
	if input.HireDate != nil {
		emp.HireDate = input.HireDate
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
