package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"accessdesk/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	SetRoles(ctx context.Context, userID uuid.UUID, primaryRoleID *uuid.UUID, extraRoleIDs []uuid.UUID) error
	GetRoles(ctx context.Context, userID uuid.UUID) ([]domain.Role, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ListActiveAdmins returns every active account holding the admin role,
	// primary or extra. This is the fan-out set for supervisor decisions.
	ListActiveAdmins(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO users (id, employee_id, full_name, email, password_hash, primary_role_id, department, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	if err := tx.QueryRowxContext(ctx, query,
		user.ID, user.EmployeeID, user.FullName, user.Email,
		user.PasswordHash, user.PrimaryRoleID, user.Department, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	for _, roleID := range user.ExtraRoleIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_extra_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			user.ID, roleID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	if err := r.loadExtraRoles(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	if err := r.loadExtraRoles(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) loadExtraRoles(ctx context.Context, user *domain.User) error {
	user.ExtraRoleIDs = []uuid.UUID{}
	return r.db.SelectContext(ctx, &user.ExtraRoleIDs,
		`SELECT role_id FROM user_extra_roles WHERE user_id = $1`, user.ID)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	return exists, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			email = $2, full_name = $3, password_hash = $4, department = $5,
			is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.FullName, user.PasswordHash, user.Department, user.IsActive,
	).Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("user")
	}
	return err
}

func (r *userRepository) SetRoles(ctx context.Context, userID uuid.UUID, primaryRoleID *uuid.UUID, extraRoleIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if primaryRoleID != nil {
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET primary_role_id = $2, updated_at = NOW() WHERE id = $1`, userID, *primaryRoleID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.NewNotFoundError("user")
		}
	}

	if extraRoleIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_extra_roles WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for _, roleID := range extraRoleIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO user_extra_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				userID, roleID); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *userRepository) GetRoles(ctx context.Context, userID uuid.UUID) ([]domain.Role, error) {
	query := `
		SELECT r.* FROM roles r
		WHERE r.id = (SELECT primary_role_id FROM users WHERE id = $1)
		   OR r.id IN (SELECT role_id FROM user_extra_roles WHERE user_id = $1)`

	var roles []domain.Role
	if err := r.db.SelectContext(ctx, &roles, query, userID); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("user")
	}
	return nil
}

func (r *userRepository) ListActiveAdmins(ctx context.Context) ([]domain.User, error) {
	query := `
		SELECT DISTINCT u.* FROM users u
		JOIN roles r ON r.id = u.primary_role_id
			OR r.id IN (SELECT role_id FROM user_extra_roles WHERE user_id = u.id)
		WHERE u.is_active = TRUE AND r.role = $1 AND r.is_active = TRUE`

	var admins []domain.User
	if err := r.db.SelectContext(ctx, &admins, query, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return admins, nil
}
