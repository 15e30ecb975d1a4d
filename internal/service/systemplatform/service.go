package systemplatform

import (
	"context"

	"github.com/google/uuid"

	"accessdesk/internal/domain"
	"accessdesk/internal/repository"
)

type Service interface {
	Create(ctx context.Context, input domain.CreateSystemPlatformInput) (*domain.SystemPlatform, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SystemPlatform, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.SystemPlatform], error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateSystemPlatformInput) (*domain.SystemPlatform, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo           repository.SystemPlatformRepository
	departmentRepo repository.DepartmentRepository
}

func NewService(repo repository.SystemPlatformRepository, departmentRepo repository.DepartmentRepository) Service {
	return &service{repo: repo, departmentRepo: departmentRepo}
}

func (s *service) Create(ctx context.Context, input domain.CreateSystemPlatformInput) (*domain.SystemPlatform, error) {
	if input.SystemName == "" || input.SystemType == "" {
		return nil, domain.NewValidationError("system name and type are required")
	}

	if _, err := s.departmentRepo.GetByID(ctx, input.OwnerDepartmentID); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("invalid owner department: department does not exist")
		}
		return nil, err
	}

	securityLevel := domain.SecurityMedium
	if input.SecurityLevel != nil {
		if !input.SecurityLevel.IsValid() {
			return nil, domain.NewValidationError("invalid security level: %s", *input.SecurityLevel)
		}
		securityLevel = *input.SecurityLevel
	}

	sys := &domain.SystemPlatform{
		ID:                uuid.New(),
		SystemName:        input.SystemName,
		SystemType:        input.SystemType,
		Description:       input.Description,
		SystemURL:         input.SystemURL,
		OwnerDepartmentID: input.OwnerDepartmentID,
		ContactName:       input.ContactName,
		ContactEmail:      input.ContactEmail,
		ContactPhone:      input.ContactPhone,
		SecurityLevel:     securityLevel,
		IsActive:          true,
	}
	if input.IsActive != nil {
		sys.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, sys); err != nil {
		return nil, err
	}
	return sys, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.SystemPlatform, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.SystemPlatform], error) {
	systems, total, err := s.repo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.SystemPlatform]{}, err
	}
	return domain.NewPaginatedResponse(systems, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateSystemPlatformInput) (*domain.SystemPlatform, error) {
	sys, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SystemName != nil {
		sys.SystemName = *input.SystemName
	}
	if input.SystemType != nil {
		sys.SystemType = *input.SystemType
	}
	if input.Description != nil {
		sys.Description = input.Description
	}
	if input.SystemURL != nil {
		sys.SystemURL = input.SystemURL
	}
	if input.OwnerDepartmentID != nil && *input.OwnerDepartmentID != sys.OwnerDepartmentID {
		if _, err := s.departmentRepo.GetByID(ctx, *input.OwnerDepartmentID); err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("invalid owner department: department does not exist")
			}
			return nil, err
		}
		sys.OwnerDepartmentID = *input.OwnerDepartmentID
	}
	if input.ContactName != nil {
		sys.ContactName = input.ContactName
	}
	if input.ContactEmail != nil {
		sys.ContactEmail = input.ContactEmail
	}
	if input.ContactPhone != nil {
		sys.ContactPhone = input.ContactPhone
	}
	if input.SecurityLevel != nil {
		if !input.SecurityLevel.IsValid() {
			return nil, domain.NewValidationError("invalid security level: %s", *input.SecurityLevel)
		}
		sys.SecurityLevel = *input.SecurityLevel
	}
	if input.IsActive != nil {
		sys.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, sys); err != nil {
		return nil, err
	}
	return sys, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
