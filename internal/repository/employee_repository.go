package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"accessdesk/internal/domain"
)

type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Employee, int64, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByEmailOrCode(ctx context.Context, email, code string, excludeID *uuid.UUID) (bool, error)
	SetProfileImage(ctx context.Context, id uuid.UUID, url *string) error
}

type employeeRepository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	query := `
		INSERT INTO employees (
			id, full_name, email, phone, employee_code, job_title,
			department_id, supervisor_id,
			department_name, department_code,
			supervisor_name, supervisor_email, supervisor_job_title,
			is_active, hire_date, profile_image
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		emp.ID, emp.FullName, emp.Email, emp.Phone, emp.EmployeeCode, emp.JobTitle,
		emp.DepartmentID, emp.SupervisorID,
		emp.DepartmentName, emp.DepartmentCode,
		emp.SupervisorName, emp.SupervisorEmail, emp.SupervisorJobTitle,
		emp.IsActive, emp.HireDate, emp.ProfileImage,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	var emp domain.Employee
	if err := r.db.GetContext(ctx, &emp, `SELECT * FROM employees WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("employee")
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var emp domain.Employee
	if err := r.db.GetContext(ctx, &emp, `SELECT * FROM employees WHERE email = $1`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("employee")
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Employee, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM employees`); err != nil {
		return nil, 0, err
	}

	var employees []domain.Employee
	query := `SELECT * FROM employees ORDER BY full_name LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &employees, query, params.PageSize, params.Offset()); err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	query := `
		UPDATE employees SET
			full_name = $2, email = $3, phone = $4, employee_code = $5, job_title = $6,
			department_id = $7, supervisor_id = $8,
			department_name = $9, department_code = $10,
			supervisor_name = $11, supervisor_email = $12, supervisor_job_title = $13,
			is_active = $14, hire_date = $15, profile_image = $16,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		emp.ID, emp.FullName, emp.Email, emp.Phone, emp.EmployeeCode, emp.JobTitle,
		emp.DepartmentID, emp.SupervisorID,
		emp.DepartmentName, emp.DepartmentCode,
		emp.SupervisorName, emp.SupervisorEmail, emp.SupervisorJobTitle,
		emp.IsActive, emp.HireDate, emp.ProfileImage,
	).Scan(&emp.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("employee")
	}
	return err
}

func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("employee")
	}
	return nil
}

func (r *employeeRepository) ExistsByEmailOrCode(ctx context.Context, email, code string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if excludeID != nil {
		err := r.db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM employees WHERE (email = $1 OR employee_code = $2) AND id <> $3)`,
			email, code, *excludeID)
		return exists, err
	}
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1 OR employee_code = $2)`, email, code)
	return exists, err
}

func (r *employeeRepository) SetProfileImage(ctx context.Context, id uuid.UUID, url *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees SET profile_image = $2, updated_at = NOW() WHERE id = $1`, id, url)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("employee")
	}
	return nil
}
