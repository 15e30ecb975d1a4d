package accesstype

import (
	"context"

	"github.com/google/uuid"

	"accessdesk/internal/domain"
	"accessdesk/internal/repository"
)

// Service manages the grantable access type catalog. Deactivating a type
// never touches grants already issued from it; capability flags are
// snapshotted onto grants at grant time.
type Service interface {
	Create(ctx context.Context, input domain.CreateAccessTypeInput) (*domain.AccessType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessType, error)
	List(ctx context.Context, activeOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.AccessType], error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateAccessTypeInput) (*domain.AccessType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository.AccessTypeRepository
}

func NewService(repo repository.AccessTypeRepository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input domain.CreateAccessTypeInput) (*domain.AccessType, error) {
	if input.TypeName == "" {
		return nil, domain.NewValidationError("type name is required")
	}

	exists, err := s.repo.ExistsByName(ctx, input.TypeName, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflictError("access type %s already exists", input.TypeName)
	}

	at := &domain.AccessType{
		ID:          uuid.New(),
		TypeName:    input.TypeName,
		Description: input.Description,
		RiskLevel:   domain.RiskLow,
		CanRead:     true,
		IsActive:    true,
	}
	if input.RequiresJustification != nil {
		at.RequiresJustification = *input.RequiresJustification
	}
	if input.DefaultDurationDays != nil {
		if *input.DefaultDurationDays < 0 {
			return nil, domain.NewValidationError("default duration days cannot be negative")
		}
		at.DefaultDurationDays = *input.DefaultDurationDays
	}
	if input.RiskLevel != nil {
		if !input.RiskLevel.IsValid() {
			return nil, domain.NewValidationError("invalid risk level: %s", *input.RiskLevel)
		}
		at.RiskLevel = *input.RiskLevel
	}
	if input.CanRead != nil {
		at.CanRead = *input.CanRead
	}
	if input.CanInsert != nil {
		at.CanInsert = *input.CanInsert
	}
	if input.CanUpdate != nil {
		at.CanUpdate = *input.CanUpdate
	}
	if input.CanDelete != nil {
		at.CanDelete = *input.CanDelete
	}
	if input.IsActive != nil {
		at.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, at); err != nil {
		return nil, err
	}
	return at, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, activeOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.AccessType], error) {
	types, total, err := s.repo.List(ctx, activeOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AccessType]{}, err
	}
	return domain.NewPaginatedResponse(types, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateAccessTypeInput) (*domain.AccessType, error) {
	at, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.TypeName != nil && *input.TypeName != at.TypeName {
		exists, err := s.repo.ExistsByName(ctx, *input.TypeName, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewConflictError("access type %s already exists", *input.TypeName)
		}
		at.TypeName = *input.TypeName
	}

	if input.Description != nil {
		at.Description = input.Description
	}
	if input.RequiresJustification != nil {
		at.RequiresJustification = *input.RequiresJustification
	}
	if input.DefaultDurationDays != nil {
		if *input.DefaultDurationDays < 0 {
			return nil, domain.NewValidationError("default duration days cannot be negative")
		}
		at.DefaultDurationDays = *input.DefaultDurationDays
	}
	if input.RiskLevel != nil {
		if !input.RiskLevel.IsValid() {
			return nil, domain.NewValidationError("invalid risk level: %s", *input.RiskLevel)
		}
		at.RiskLevel = *input.RiskLevel
	}
	if input.CanRead != nil {
		at.CanRead = *input.CanRead
	}
	if input.CanInsert != nil {
		at.CanInsert = *input.CanInsert
	}
	if input.CanUpdate != nil {
		at.CanUpdate = *input.CanUpdate
	}
	if input.CanDelete != nil {
		at.CanDelete = *input.CanDelete
	}
	if input.IsActive != nil {
		at.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, at); err != nil {
		return nil, err
	}
	return at, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
