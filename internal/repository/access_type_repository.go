package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"accessdesk/internal/domain"
)

type AccessTypeRepository interface {
	Create(ctx context.Context, at *domain.AccessType) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessType, error)
	List(ctx context.Context, activeOnly bool, params domain.PaginationParams) ([]domain.AccessType, int64, error)
	Update(ctx context.Context, at *domain.AccessType) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}

type accessTypeRepository struct {
	db *sqlx.DB
}

func NewAccessTypeRepository(db *sqlx.DB) AccessTypeRepository {
	return &accessTypeRepository{db: db}
}

func (r *accessTypeRepository) Create(ctx context.Context, at *domain.AccessType) error {
	query := `
		INSERT INTO access_types (
			id, type_name, description, requires_justification, default_duration_days,
			risk_level, can_read, can_insert, can_update, can_delete, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		at.ID, at.TypeName, at.Description, at.RequiresJustification, at.DefaultDurationDays,
		at.RiskLevel, at.CanRead, at.CanInsert, at.CanUpdate, at.CanDelete, at.IsActive,
	).Scan(&at.CreatedAt, &at.UpdatedAt)
}

func (r *accessTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AccessType, error) {
	var at domain.AccessType
	if err := r.db.GetContext(ctx, &at, `SELECT * FROM access_types WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("access type")
		}
		return nil, err
	}
	return &at, nil
}

func (r *accessTypeRepository) List(ctx context.Context, activeOnly bool, params domain.PaginationParams) ([]domain.AccessType, int64, error) {
	params.Validate()

	where := ""
	if activeOnly {
		where = " WHERE is_active = TRUE"
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM access_types`+where); err != nil {
		return nil, 0, err
	}

	var types []domain.AccessType
	query := `SELECT * FROM access_types` + where + ` ORDER BY type_name LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &types, query, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}
	return types, total, nil
}

func (r *accessTypeRepository) Update(ctx context.Context, at *domain.AccessType) error {
	query := `
		UPDATE access_types SET
			type_name = $2, description = $3, requires_justification = $4,
			default_duration_days = $5, risk_level = $6,
			can_read = $7, can_insert = $8, can_update = $9, can_delete = $10,
			is_active = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		at.ID, at.TypeName, at.Description, at.RequiresJustification,
		at.DefaultDurationDays, at.RiskLevel,
		at.CanRead, at.CanInsert, at.CanUpdate, at.CanDelete, at.IsActive,
	).Scan(&at.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("access type")
	}
	return err
}

func (r *accessTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM access_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("access type")
	}
	return nil
}

func (r *accessTypeRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if excludeID != nil {
		err := r.db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM access_types WHERE type_name = $1 AND id <> $2)`, name, *excludeID)
		return exists, err
	}
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM access_types WHERE type_name = $1)`, name)
	return exists, err
}
