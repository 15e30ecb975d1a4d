package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"accessdesk/internal/domain"
)

type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Department, int64, error)
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
}

type departmentRepository struct {
	db *sqlx.DB
}

func NewDepartmentRepository(db *sqlx.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	query := `
		INSERT INTO departments (id, department_name, department_code, head_of_department, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		dept.ID, dept.DepartmentName, dept.DepartmentCode,
		dept.HeadOfDepartment, dept.Description, dept.IsActive,
	).Scan(&dept.CreatedAt, &dept.UpdatedAt)
}

func (r *departmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	var dept domain.Department
	if err := r.db.GetContext(ctx, &dept, `SELECT * FROM departments WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("department")
		}
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Department, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM departments`); err != nil {
		return nil, 0, err
	}

	var departments []domain.Department
	query := `SELECT * FROM departments ORDER BY department_name LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &departments, query, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}
	return departments, total, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	query := `
		UPDATE departments SET
			department_name = $2, department_code = $3, head_of_department = $4,
			description = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		dept.ID, dept.DepartmentName, dept.DepartmentCode,
		dept.HeadOfDepartment, dept.Description, dept.IsActive,
	).Scan(&dept.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("department")
	}
	return err
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("department")
	}
	return nil
}

func (r *departmentRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if excludeID != nil {
		err := r.db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM departments WHERE department_code = $1 AND id <> $2)`, code, *excludeID)
		return exists, err
	}
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM departments WHERE department_code = $1)`, code)
	return exists, err
}
