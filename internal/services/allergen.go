package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type CreateAllergenInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

type UpdateAllergenInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Severity    *string `json:"severity"`
}

type AllergenService interface {
	// Create makes a tenant-level allergen. The system set is seeded at
	// startup and never written through this path.
	Create(ctx context.Context, input CreateAllergenInput) (*types.Allergen, error)
	GetByID(ctx context.Context, allergenID uuid.UUID) (*types.Allergen, error)
	// List returns the system set plus the tenant's own definitions.
	List(ctx context.Context) ([]*types.Allergen, error)
	Update(ctx context.Context, allergenID uuid.UUID, input UpdateAllergenInput) (*types.Allergen, error)
	Delete(ctx context.Context, allergenID uuid.UUID) error
}

type allergenService struct {
	db           *gorm.DB
	log          *logger.Logger
	allergenRepo repos.AllergenRepo
}

func NewAllergenService(db *gorm.DB, baseLog *logger.Logger, allergenRepo repos.AllergenRepo) AllergenService {
	return &allergenService{
		db:           db,
		log:          baseLog.With("service", "allergen"),
		allergenRepo: allergenRepo,
	}
}

func (s *allergenService) Create(ctx context.Context, input CreateAllergenInput) (*types.Allergen, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("allergen name is required: %w", apperr.ErrInvalidArgument)
	}
	severity := input.Severity
	if severity == "" {
		severity = types.SeverityMedium
	}
	if !types.ValidSeverity(severity) {
		return nil, fmt.Errorf("unknown severity %q: %w", severity, apperr.ErrInvalidArgument)
	}
	tenantID := rd.TenantID
	userID := rd.UserID
	return s.allergenRepo.Create(ctx, nil, &types.Allergen{
		TenantID:      &tenantID,
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Severity:      severity,
		IsSystemLevel: false,
		CreatedBy:     &userID,
	})
}

func (s *allergenService) GetByID(ctx context.Context, allergenID uuid.UUID) (*types.Allergen, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	allergen, err := s.allergenRepo.GetByID(ctx, nil, allergenID)
	if err != nil {
		return nil, err
	}
	if !s.visibleTo(allergen, rd.TenantID) {
		return nil, apperr.ErrNotFound
	}
	return allergen, nil
}

func (s *allergenService) List(ctx context.Context) ([]*types.Allergen, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.allergenRepo.ListAccessible(ctx, nil, rd.TenantID)
}

func (s *allergenService) Update(ctx context.Context, allergenID uuid.UUID, input UpdateAllergenInput) (*types.Allergen, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	allergen, err := s.allergenRepo.GetByID(ctx, nil, allergenID)
	if err != nil {
		return nil, err
	}
	if !s.ownedBy(allergen, rd.TenantID) {
		// System rows and foreign rows look the same from the outside.
		return nil, apperr.ErrNotFound
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("allergen name cannot be blank: %w", apperr.ErrInvalidArgument)
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Severity != nil {
		if !types.ValidSeverity(*input.Severity) {
			return nil, fmt.Errorf("unknown severity %q: %w", *input.Severity, apperr.ErrInvalidArgument)
		}
		updates["severity"] = *input.Severity
	}
	if len(updates) > 0 {
		if err := s.allergenRepo.Update(ctx, nil, allergenID, updates); err != nil {
			return nil, err
		}
	}
	return s.allergenRepo.GetByID(ctx, nil, allergenID)
}

func (s *allergenService) Delete(ctx context.Context, allergenID uuid.UUID) error {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return err
	}
	allergen, err := s.allergenRepo.GetByID(ctx, nil, allergenID)
	if err != nil {
		return err
	}
	if !s.ownedBy(allergen, rd.TenantID) {
		return apperr.ErrNotFound
	}
	return s.allergenRepo.Delete(ctx, nil, allergenID)
}

func (s *allergenService) visibleTo(allergen *types.Allergen, tenantID uuid.UUID) bool {
	if allergen.IsSystemLevel {
		return true
	}
	return allergen.TenantID != nil && *allergen.TenantID == tenantID
}

func (s *allergenService) ownedBy(allergen *types.Allergen, tenantID uuid.UUID) bool {
	return !allergen.IsSystemLevel && allergen.TenantID != nil && *allergen.TenantID == tenantID
}
