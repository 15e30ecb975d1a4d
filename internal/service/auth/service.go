package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"accessdesk/internal/config"
	"accessdesk/internal/domain"
	"accessdesk/internal/repository"
)

// Claims carries the account identity plus its effective permission union so
// request handlers never re-query roles.
type Claims struct {
	UserID      uuid.UUID                   `json:"user_id"`
	Email       string                      `json:"email"`
	Permissions domain.EffectivePermissions `json:"permissions"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

type Service interface {
	Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	Login(ctx context.Context, input domain.LoginInput) (*LoginResult, error)
	ValidateAccessToken(tokenString string) (*Claims, error)

	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
	UpdateUserRoles(ctx context.Context, id uuid.UUID, input domain.UpdateUserRolesInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	EffectivePermissions(ctx context.Context, userID uuid.UUID) (domain.EffectivePermissions, error)

	ListRoles(ctx context.Context) ([]domain.Role, error)
	UpdateRole(ctx context.Context, id uuid.UUID, input domain.UpdateRoleInput) (*domain.Role, error)
}

type service struct {
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	employeeRepo repository.EmployeeRepository
	config       *config.Config
}

func NewService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, employeeRepo repository.EmployeeRepository, cfg *config.Config) Service {
	return &service{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		employeeRepo: employeeRepo,
		config:       cfg,
	}
}

func (s *service) Register(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}
	if len(input.Password) < 8 {
		return nil, domain.NewValidationError("password must be at least 8 characters")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflictError("an account with this email already exists")
	}

	primaryRole, err := s.roleRepo.GetByID(ctx, input.PrimaryRoleID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("invalid primary role: role does not exist")
		}
		return nil, err
	}
	for _, roleID := range input.ExtraRoleIDs {
		if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("invalid extra role: role does not exist")
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:            uuid.New(),
		Email:         input.Email,
		PasswordHash:  string(hash),
		PrimaryRoleID: primaryRole.ID,
		ExtraRoleIDs:  input.ExtraRoleIDs,
		IsActive:      true,
	}

	// Link to the employee record sharing the account email, when one exists.
	if emp, err := s.employeeRepo.GetByEmail(ctx, input.Email); err == nil {
		user.EmployeeID = &emp.ID
		user.FullName = emp.FullName
		user.Department = emp.DepartmentName
	} else if !domain.IsNotFound(err) {
		return nil, err
	}
	if user.FullName == "" {
		user.FullName = input.Email
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("invalid email or password")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.NewValidationError("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.NewValidationError("invalid email or password")
	}

	perms, err := s.EffectivePermissions(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.config.JWTExpiry)
	claims := Claims{
		UserID:      user.ID,
		Email:       user.Email,
		Permissions: perms,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewConflictError("an account with this email already exists")
		}
		user.Email = *input.Email
	}
	if input.Department != nil {
		user.Department = input.Department
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, domain.NewValidationError("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) UpdateUserRoles(ctx context.Context, id uuid.UUID, input domain.UpdateUserRolesInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PrimaryRoleID != nil {
		if _, err := s.roleRepo.GetByID(ctx, *input.PrimaryRoleID); err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("invalid primary role: role does not exist")
			}
			return nil, err
		}
	}
	for _, roleID := range input.ExtraRoleIDs {
		if _, err := s.roleRepo.GetByID(ctx, roleID); err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError("invalid extra role: role does not exist")
			}
			return nil, err
		}
	}

	if err := s.userRepo.SetRoles(ctx, id, input.PrimaryRoleID, input.ExtraRoleIDs); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, user.ID)
}

func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *service) EffectivePermissions(ctx context.Context, userID uuid.UUID) (domain.EffectivePermissions, error) {
	roles, err := s.userRepo.GetRoles(ctx, userID)
	if err != nil {
		return domain.EffectivePermissions{}, err
	}
	return domain.UnionPermissions(roles), nil
}

func (s *service) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roleRepo.List(ctx)
}

// UpdateRole tunes an existing role's flags and access level. The role name
// set is fixed, so there is no create or delete counterpart.
func (s *service) UpdateRole(ctx context.Context, id uuid.UUID, input domain.UpdateRoleInput) (*domain.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		role.Description = input.Description
	}
	if input.CanRead != nil {
		role.CanRead = *input.CanRead
	}
	if input.CanInsert != nil {
		role.CanInsert = *input.CanInsert
	}
	if input.CanUpdate != nil {
		role.CanUpdate = *input.CanUpdate
	}
	if input.CanDelete != nil {
		role.CanDelete = *input.CanDelete
	}
	if input.AccessLevel != nil {
		if *input.AccessLevel < 0 {
			return nil, domain.NewValidationError("access level cannot be negative")
		}
		role.AccessLevel = *input.AccessLevel
	}
	if input.IsActive != nil {
		role.IsActive = *input.IsActive
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}
