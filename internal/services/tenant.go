package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type UpdateTenantInput struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	Address      *string `json:"address"`
}

type TenantService interface {
	// Get returns the tenant in ctx; cross-tenant reads do not exist.
	Get(ctx context.Context) (*types.Tenant, error)
	Update(ctx context.Context, input UpdateTenantInput) (*types.Tenant, error)
	Deactivate(ctx context.Context) error
}

type tenantService struct {
	db         *gorm.DB
	log        *logger.Logger
	tenantRepo repos.TenantRepo
}

func NewTenantService(db *gorm.DB, baseLog *logger.Logger, tenantRepo repos.TenantRepo) TenantService {
	return &tenantService{
		db:         db,
		log:        baseLog.With("service", "tenant"),
		tenantRepo: tenantRepo,
	}
}

func (s *tenantService) Get(ctx context.Context) (*types.Tenant, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.tenantRepo.GetByID(ctx, nil, rd.TenantID)
}

func (s *tenantService) Update(ctx context.Context, input UpdateTenantInput) (*types.Tenant, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if rd.Role != types.RoleAdmin {
		return nil, fmt.Errorf("only admins can change tenant settings: %w", apperr.ErrForbidden)
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("tenant name cannot be blank: %w", apperr.ErrInvalidArgument)
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.ContactEmail != nil {
		if strings.TrimSpace(*input.ContactEmail) == "" {
			return nil, fmt.Errorf("contact email cannot be blank: %w", apperr.ErrInvalidArgument)
		}
		updates["contact_email"] = strings.ToLower(strings.TrimSpace(*input.ContactEmail))
	}
	if input.ContactPhone != nil {
		updates["contact_phone"] = *input.ContactPhone
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if len(updates) > 0 {
		if err := s.tenantRepo.Update(ctx, nil, rd.TenantID, updates); err != nil {
			return nil, err
		}
	}
	return s.tenantRepo.GetByID(ctx, nil, rd.TenantID)
}

func (s *tenantService) Deactivate(ctx context.Context) error {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return err
	}
	if rd.Role != types.RoleAdmin {
		return fmt.Errorf("only admins can deactivate a tenant: %w", apperr.ErrForbidden)
	}
	return s.tenantRepo.Deactivate(ctx, nil, rd.TenantID)
}
