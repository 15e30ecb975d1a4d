package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an authentication account, linked to an Employee record by email at
// creation time.
type User struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	EmployeeID    *uuid.UUID  `json:"employee_id,omitempty" db:"employee_id"`
	FullName      string      `json:"full_name" db:"full_name"`
	Email         string      `json:"email" db:"email"`
	PasswordHash  string      `json:"-" db:"password_hash"`
	PrimaryRoleID uuid.UUID   `json:"primary_role_id" db:"primary_role_id"`
	ExtraRoleIDs  []uuid.UUID `json:"extra_role_ids,omitempty" db:"-"`
	Department    *string     `json:"department,omitempty" db:"department"`
	IsActive      bool        `json:"is_active" db:"is_active"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

type CreateUserInput struct {
	Email         string      `json:"email"`
	Password      string      `json:"password"`
	PrimaryRoleID uuid.UUID   `json:"primary_role_id"`
	ExtraRoleIDs  []uuid.UUID `json:"extra_role_ids,omitempty"`
}

type UpdateUserInput struct {
	Email      *string `json:"email,omitempty"`
	Department *string `json:"department,omitempty"`
	Password   *string `json:"password,omitempty"`
}

type UpdateUserRolesInput struct {
	PrimaryRoleID *uuid.UUID  `json:"primary_role_id,omitempty"`
	ExtraRoleIDs  []uuid.UUID `json:"extra_role_ids,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EffectivePermissions is the union of every active role held by a user.
type EffectivePermissions struct {
	Roles       []string        `json:"roles"`
	Permissions PermissionFlags `json:"permissions"`
	AccessLevel int             `json:"access_level"`
}
