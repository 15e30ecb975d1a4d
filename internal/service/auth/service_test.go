package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"accessdesk/internal/config"
	"accessdesk/internal/domain"
	"accessdesk/internal/mocks"
	"accessdesk/internal/service/auth"
)

func newAuthService() (auth.Service, *mocks.UserRepository, *mocks.RoleRepository, *mocks.EmployeeRepository) {
	userRepo := new(mocks.UserRepository)
	roleRepo := new(mocks.RoleRepository)
	employeeRepo := new(mocks.EmployeeRepository)
	cfg := &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
	return auth.NewService(userRepo, roleRepo, employeeRepo, cfg), userRepo, roleRepo, employeeRepo
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	adminRole := domain.Role{
		ID:              uuid.New(),
		Role:            domain.RoleAdmin,
		PermissionFlags: domain.PermissionFlags{CanRead: true, CanInsert: true, CanUpdate: true, CanDelete: true},
		AccessLevel:     5,
		IsActive:        true,
	}

	t.Run("Success Issues Token With Permission Union", func(t *testing.T) {
		svc, userRepo, _, _ := newAuthService()

		user := &domain.User{
			ID:           uuid.New(),
			Email:        "admin@example.com",
			PasswordHash: hashPassword(t, "correct-horse"),
			IsActive:     true,
		}
		userRepo.On("GetByEmail", ctx, "admin@example.com").Return(user, nil).Once()
		userRepo.On("GetRoles", ctx, user.ID).Return([]domain.Role{adminRole}, nil).Once()

		result, err := svc.Login(ctx, domain.LoginInput{Email: "admin@example.com", Password: "correct-horse"})

		assert.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, 5*time.Second)

		claims, err := svc.ValidateAccessToken(result.Token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, []string{"admin"}, claims.Permissions.Roles)
		assert.True(t, claims.Permissions.Permissions.CanDelete)
		assert.Equal(t, 5, claims.Permissions.AccessLevel)
	})

	t.Run("Wrong Password Fails", func(t *testing.T) {
		svc, userRepo, _, _ := newAuthService()

		user := &domain.User{
			ID:           uuid.New(),
			Email:        "admin@example.com",
			PasswordHash: hashPassword(t, "correct-horse"),
			IsActive:     true,
		}
		userRepo.On("GetByEmail", ctx, "admin@example.com").Return(user, nil).Once()

		result, err := svc.Login(ctx, domain.LoginInput{Email: "admin@example.com", Password: "wrong"})

		assert.Nil(t, result)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Unknown Email Fails The Same Way", func(t *testing.T) {
		svc, userRepo, _, _ := newAuthService()
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.NewNotFoundError("user")).Once()

		result, err := svc.Login(ctx, domain.LoginInput{Email: "ghost@example.com", Password: "whatever"})

		assert.Nil(t, result)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Deactivated Account Fails", func(t *testing.T) {
		svc, userRepo, _, _ := newAuthService()

		user := &domain.User{
			ID:           uuid.New(),
			Email:        "gone@example.com",
			PasswordHash: hashPassword(t, "correct-horse"),
			IsActive:     false,
		}
		userRepo.On("GetByEmail", ctx, "gone@example.com").Return(user, nil).Once()

		result, err := svc.Login(ctx, domain.LoginInput{Email: "gone@example.com", Password: "correct-horse"})

		assert.Nil(t, result)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	svc, _, _, _ := newAuthService()

	t.Run("Garbage Token Rejected", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken("not-a-token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Token Signed With Other Secret Rejected", func(t *testing.T) {
		ctx := context.Background()

		user := &domain.User{
			ID:           uuid.New(),
			Email:        "a@example.com",
			PasswordHash: hashPassword(t, "pw-12345"),
			IsActive:     true,
		}
		otherUserRepo := new(mocks.UserRepository)
		otherUserRepo.On("GetByEmail", ctx, "a@example.com").Return(user, nil).Once()
		otherUserRepo.On("GetRoles", ctx, user.ID).Return([]domain.Role{}, nil).Once()

		otherCfg := &config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour}
		other := auth.NewService(otherUserRepo, new(mocks.RoleRepository), new(mocks.EmployeeRepository), otherCfg)

		result, err := other.Login(ctx, domain.LoginInput{Email: "a@example.com", Password: "pw-12345"})
		assert.NoError(t, err)

		claims, err := svc.ValidateAccessToken(result.Token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	roleID := uuid.New()
	role := &domain.Role{ID: roleID, Role: domain.RoleEmployee, IsActive: true}

	t.Run("Links Matching Employee Record", func(t *testing.T) {
		svc, userRepo, roleRepo, employeeRepo := newAuthService()

		dept := "Engineering"
		emp := &domain.Employee{
			ID:             uuid.New(),
			FullName:       "Ada Wong",
			Email:          "ada@example.com",
			DepartmentName: &dept,
		}

		userRepo.On("ExistsByEmail", ctx, "ada@example.com").Return(false, nil).Once()
		roleRepo.On("GetByID", ctx, roleID).Return(role, nil).Once()
		employeeRepo.On("GetByEmail", ctx, "ada@example.com").Return(emp, nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return *u.EmployeeID == emp.ID && u.FullName == "Ada Wong" && u.IsActive
		})).Return(nil).Once()

		user, err := svc.Register(ctx, domain.CreateUserInput{
			Email:         "ada@example.com",
			Password:      "long-enough-pw",
			PrimaryRoleID: roleID,
		})

		assert.NoError(t, err)
		assert.Equal(t, emp.ID, *user.EmployeeID)
		userRepo.AssertExpectations(t)
	})

	t.Run("Duplicate Email Conflicts", func(t *testing.T) {
		svc, userRepo, _, _ := newAuthService()
		userRepo.On("ExistsByEmail", ctx, "dup@example.com").Return(true, nil).Once()

		user, err := svc.Register(ctx, domain.CreateUserInput{
			Email:         "dup@example.com",
			Password:      "long-enough-pw",
			PrimaryRoleID: roleID,
		})

		assert.Nil(t, user)
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("Short Password Fails Validation", func(t *testing.T) {
		svc, _, _, _ := newAuthService()

		user, err := svc.Register(ctx, domain.CreateUserInput{
			Email:         "new@example.com",
			Password:      "short",
			PrimaryRoleID: roleID,
		})

		assert.Nil(t, user)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestAuthService_UpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Patches Only The Provided Fields", func(t *testing.T) {
		svc, _, roleRepo, _ := newAuthService()

		roleID := uuid.New()
		roleRepo.On("GetByID", ctx, roleID).Return(&domain.Role{
			ID:              roleID,
			Role:            domain.RoleManager,
			PermissionFlags: domain.PermissionFlags{CanRead: true},
			AccessLevel:     3,
			IsActive:        true,
		}, nil).Once()
		roleRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Role) bool {
			return r.ID == roleID && r.CanRead && r.CanUpdate && !r.CanDelete && r.AccessLevel == 3
		})).Return(nil).Once()

		canUpdate := true
		role, err := svc.UpdateRole(ctx, roleID, domain.UpdateRoleInput{CanUpdate: &canUpdate})

		assert.NoError(t, err)
		assert.True(t, role.CanUpdate)
		assert.Equal(t, 3, role.AccessLevel)
		roleRepo.AssertExpectations(t)
	})

	t.Run("Negative Access Level Rejected", func(t *testing.T) {
		svc, _, roleRepo, _ := newAuthService()

		roleID := uuid.New()
		roleRepo.On("GetByID", ctx, roleID).Return(&domain.Role{ID: roleID, Role: domain.RoleIntern}, nil).Once()

		level := -1
		role, err := svc.UpdateRole(ctx, roleID, domain.UpdateRoleInput{AccessLevel: &level})

		assert.Nil(t, role)
		assert.True(t, domain.IsValidation(err))
		roleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Role", func(t *testing.T) {
		svc, _, roleRepo, _ := newAuthService()

		roleID := uuid.New()
		roleRepo.On("GetByID", ctx, roleID).Return(nil, domain.NewNotFoundError("role")).Once()

		role, err := svc.UpdateRole(ctx, roleID, domain.UpdateRoleInput{})

		assert.Nil(t, role)
		assert.True(t, domain.IsNotFound(err))
	})
}
