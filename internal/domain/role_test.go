package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"accessdesk/internal/domain"
)

func TestUnionPermissions(t *testing.T) {
	reader := domain.Role{
		Role:            domain.RoleEmployee,
		PermissionFlags: domain.PermissionFlags{CanRead: true},
		AccessLevel:     1,
		IsActive:        true,
	}
	writer := domain.Role{
		Role:            domain.RoleManager,
		PermissionFlags: domain.PermissionFlags{CanRead: true, CanInsert: true, CanUpdate: true},
		AccessLevel:     3,
		IsActive:        true,
	}
	admin := domain.Role{
		Role:            domain.RoleAdmin,
		PermissionFlags: domain.PermissionFlags{CanRead: true, CanInsert: true, CanUpdate: true, CanDelete: true},
		AccessLevel:     5,
		IsActive:        true,
	}

	t.Run("Union Grants Capability If Any Role Does", func(t *testing.T) {
		eff := domain.UnionPermissions([]domain.Role{reader, writer})

		assert.ElementsMatch(t, []string{"employee", "manager"}, eff.Roles)
		assert.True(t, eff.Permissions.CanRead)
		assert.True(t, eff.Permissions.CanInsert)
		assert.True(t, eff.Permissions.CanUpdate)
		assert.False(t, eff.Permissions.CanDelete)
		assert.Equal(t, 3, eff.AccessLevel)
	})

	t.Run("Inactive Roles Contribute Nothing", func(t *testing.T) {
		inactiveAdmin := admin
		inactiveAdmin.IsActive = false

		eff := domain.UnionPermissions([]domain.Role{reader, inactiveAdmin})

		assert.Equal(t, []string{"employee"}, eff.Roles)
		assert.False(t, eff.Permissions.CanDelete)
		assert.Equal(t, 1, eff.AccessLevel)
	})

	t.Run("Empty Set Has No Permissions", func(t *testing.T) {
		eff := domain.UnionPermissions(nil)

		assert.Empty(t, eff.Roles)
		assert.False(t, eff.Permissions.CanRead)
		assert.Equal(t, 0, eff.AccessLevel)
	})
}
