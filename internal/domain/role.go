package domain

import (
	"time"

	"github.com/google/uuid"
)

type RoleName string

const (
	RoleAdmin    RoleName = "admin"
	RoleManager  RoleName = "manager"
	RoleJunior   RoleName = "junior"
	RoleIntern   RoleName = "intern"
	RoleEmployee RoleName = "employee"
)

func (r RoleName) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleJunior, RoleIntern, RoleEmployee:
		return true
	default:
		return false
	}
}

type PermissionFlags struct {
	CanRead   bool `json:"can_read" db:"can_read"`
	CanInsert bool `json:"can_insert" db:"can_insert"`
	CanUpdate bool `json:"can_update" db:"can_update"`
	CanDelete bool `json:"can_delete" db:"can_delete"`
}

// Union merges another permission set into this one; a capability is granted
// if any contributing role grants it.
func (p PermissionFlags) Union(other PermissionFlags) PermissionFlags {
	return PermissionFlags{
		CanRead:   p.CanRead || other.CanRead,
		CanInsert: p.CanInsert || other.CanInsert,
		CanUpdate: p.CanUpdate || other.CanUpdate,
		CanDelete: p.CanDelete || other.CanDelete,
	}
}

type Role struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Role        RoleName  `json:"role" db:"role"`
	Description *string   `json:"description,omitempty" db:"description"`
	PermissionFlags
	AccessLevel int       `json:"access_level" db:"access_level"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type UpdateRoleInput struct {
	Description *string `json:"description,omitempty"`
	CanRead     *bool   `json:"can_read,omitempty"`
	CanInsert   *bool   `json:"can_insert,omitempty"`
	CanUpdate   *bool   `json:"can_update,omitempty"`
	CanDelete   *bool   `json:"can_delete,omitempty"`
	AccessLevel *int    `json:"access_level,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// UnionPermissions folds a set of role records into one effective permission
// view. Inactive roles contribute nothing. Replaces the source system's
// mutable populate-chain role resolution with an explicit pure function.
func UnionPermissions(roles []Role) EffectivePermissions {
	eff := EffectivePermissions{Roles: make([]string, 0, len(roles))}
	for _, r := range roles {
		if !r.IsActive {
			continue
		}
		eff.Roles = append(eff.Roles, string(r.Role))
		eff.Permissions = eff.Permissions.Union(r.PermissionFlags)
		if r.AccessLevel > eff.AccessLevel {
			eff.AccessLevel = r.AccessLevel
		}
	}
	return eff
}
