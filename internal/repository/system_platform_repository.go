package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"accessdesk/internal/domain"
)

type SystemPlatformRepository interface {
	Create(ctx context.Context, sys *domain.SystemPlatform) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SystemPlatform, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.SystemPlatform, int64, error)
	Update(ctx context.Context, sys *domain.SystemPlatform) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type systemPlatformRepository struct {
	db *sqlx.DB
}

func NewSystemPlatformRepository(db *sqlx.DB) SystemPlatformRepository {
	return &systemPlatformRepository{db: db}
}

func (r *systemPlatformRepository) Create(ctx context.Context, sys *domain.SystemPlatform) error {
	query := `
		INSERT INTO system_platforms (
			id, system_name, system_type, description, system_url,
			owner_department_id, contact_name, contact_email, contact_phone,
			security_level, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		sys.ID, sys.SystemName, sys.SystemType, sys.Description, sys.SystemURL,
		sys.OwnerDepartmentID, sys.ContactName, sys.ContactEmail, sys.ContactPhone,
		sys.SecurityLevel, sys.IsActive,
	).Scan(&sys.CreatedAt, &sys.UpdatedAt)
}

func (r *systemPlatformRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SystemPlatform, error) {
	var sys domain.SystemPlatform
	if err := r.db.GetContext(ctx, &sys, `SELECT * FROM system_platforms WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("system platform")
		}
		return nil, err
	}
	return &sys, nil
}

func (r *systemPlatformRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.SystemPlatform, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM system_platforms`); err != nil {
		return nil, 0, err
	}

	var systems []domain.SystemPlatform
	query := `SELECT * FROM system_platforms ORDER BY system_name LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &systems, query, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}
	return systems, total, nil
}

func (r *systemPlatformRepository) Update(ctx context.Context, sys *domain.SystemPlatform) error {
	query := `
		UPDATE system_platforms SET
			system_name = $2, system_type = $3, description = $4, system_url = $5,
			owner_department_id = $6, contact_name = $7, contact_email = $8,
			contact_phone = $9, security_level = $10, is_active = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		sys.ID, sys.SystemName, sys.SystemType, sys.Description, sys.SystemURL,
		sys.OwnerDepartmentID, sys.ContactName, sys.ContactEmail, sys.ContactPhone,
		sys.SecurityLevel, sys.IsActive,
	).Scan(&sys.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("system platform")
	}
	return err
}

func (r *systemPlatformRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM system_platforms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("system platform")
	}
	return nil
}
