package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type CreateUserInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type UpdateUserInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
	Password  *string `json:"password"`
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*types.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*types.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      baseLog.With("service", "user"),
		userRepo: userRepo,
	}
}

const minPasswordLength = 8

func validateUserInput(input CreateUserInput) error {
	if strings.TrimSpace(input.Email) == "" {
		return fmt.Errorf("email is required: %w", apperr.ErrInvalidArgument)
	}
	if len(input.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, apperr.ErrInvalidArgument)
	}
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return fmt.Errorf("first and last name are required: %w", apperr.ErrInvalidArgument)
	}
	if input.Role != "" && !types.ValidRole(input.Role) {
		return fmt.Errorf("unknown role %q: %w", input.Role, apperr.ErrInvalidArgument)
	}
	return nil
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*types.User, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if rd.Role != types.RoleAdmin && rd.Role != types.RoleManager {
		return nil, fmt.Errorf("only admins and managers can create users: %w", apperr.ErrForbidden)
	}
	if err := validateUserInput(input); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email already in use: %w", apperr.ErrInvalidArgument)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	role := input.Role
	if role == "" {
		role = types.RoleStaff
	}
	return s.userRepo.Create(ctx, nil, &types.User{
		TenantID:  rd.TenantID,
		Email:     email,
		Password:  string(hash),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Role:      role,
		IsActive:  true,
	})
}

func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, nil, rd.TenantID, userID)
}

func (s *userService) List(ctx context.Context) ([]*types.User, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.userRepo.ListByTenant(ctx, nil, rd.TenantID)
}

func (s *userService) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*types.User, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	// Staff may only edit themselves; role changes need an admin.
	if rd.Role == types.RoleStaff && rd.UserID != userID {
		return nil, fmt.Errorf("cannot edit another user: %w", apperr.ErrForbidden)
	}

	updates := map[string]any{}
	if input.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.Role != nil {
		if rd.Role != types.RoleAdmin {
			return nil, fmt.Errorf("only admins can change roles: %w", apperr.ErrForbidden)
		}
		if !types.ValidRole(*input.Role) {
			return nil, fmt.Errorf("unknown role %q: %w", *input.Role, apperr.ErrInvalidArgument)
		}
		updates["role"] = *input.Role
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, apperr.ErrInvalidArgument)
		}
		hash, hErr := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if hErr != nil {
			return nil, fmt.Errorf("hashing password: %w", hErr)
		}
		updates["password"] = string(hash)
	}
	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, nil, rd.TenantID, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetByID(ctx, nil, rd.TenantID, userID)
}

func (s *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return err
	}
	if rd.Role != types.RoleAdmin {
		return fmt.Errorf("only admins can remove users: %w", apperr.ErrForbidden)
	}
	if rd.UserID == userID {
		return fmt.Errorf("cannot remove your own account: %w", apperr.ErrInvalidArgument)
	}
	return s.userRepo.Delete(ctx, nil, rd.TenantID, userID)
}
