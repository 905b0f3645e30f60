package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type CreateIngredientInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	DefaultUnit string   `json:"default_unit"`
	Allergens   []string `json:"allergens"`
	Supplier    string   `json:"supplier"`
	CostPerUnit float64  `json:"cost_per_unit"`
}

type UpdateIngredientInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	DefaultUnit *string   `json:"default_unit"`
	Allergens   *[]string `json:"allergens"`
	Supplier    *string   `json:"supplier"`
	CostPerUnit *float64  `json:"cost_per_unit"`
}

type IngredientService interface {
	Create(ctx context.Context, input CreateIngredientInput) (*types.Ingredient, error)
	GetByID(ctx context.Context, ingredientID uuid.UUID) (*types.Ingredient, error)
	List(ctx context.Context, filters map[string]any) ([]*types.Ingredient, error)
	Update(ctx context.Context, ingredientID uuid.UUID, input UpdateIngredientInput) (*types.Ingredient, error)
	Delete(ctx context.Context, ingredientID uuid.UUID) error
}

type ingredientService struct {
	db             *gorm.DB
	log            *logger.Logger
	ingredientRepo repos.IngredientRepo
}

func NewIngredientService(db *gorm.DB, baseLog *logger.Logger, ingredientRepo repos.IngredientRepo) IngredientService {
	return &ingredientService{
		db:             db,
		log:            baseLog.With("service", "ingredient"),
		ingredientRepo: ingredientRepo,
	}
}

func normalizeAllergenLabels(labels []string) ([]string, error) {
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			return nil, fmt.Errorf("allergen labels cannot be blank: %w", apperr.ErrInvalidArgument)
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out, nil
}

func (s *ingredientService) Create(ctx context.Context, input CreateIngredientInput) (*types.Ingredient, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("ingredient name is required: %w", apperr.ErrInvalidArgument)
	}
	if strings.TrimSpace(input.DefaultUnit) == "" {
		return nil, fmt.Errorf("default unit is required: %w", apperr.ErrInvalidArgument)
	}
	labels, err := normalizeAllergenLabels(input.Allergens)
	if err != nil {
		return nil, err
	}
	return s.ingredientRepo.Create(ctx, nil, &types.Ingredient{
		TenantID:    rd.TenantID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		DefaultUnit: strings.TrimSpace(input.DefaultUnit),
		Allergens:   datatypes.NewJSONSlice(labels),
		Supplier:    input.Supplier,
		CostPerUnit: input.CostPerUnit,
		IsActive:    true,
		CreatedBy:   rd.UserID,
	})
}

func (s *ingredientService) GetByID(ctx context.Context, ingredientID uuid.UUID) (*types.Ingredient, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.ingredientRepo.GetByID(ctx, nil, rd.TenantID, ingredientID)
}

func (s *ingredientService) List(ctx context.Context, filters map[string]any) ([]*types.Ingredient, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.ingredientRepo.ListByTenant(ctx, nil, rd.TenantID, filters)
}

func (s *ingredientService) Update(ctx context.Context, ingredientID uuid.UUID, input UpdateIngredientInput) (*types.Ingredient, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("ingredient name cannot be blank: %w", apperr.ErrInvalidArgument)
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.DefaultUnit != nil {
		if strings.TrimSpace(*input.DefaultUnit) == "" {
			return nil, fmt.Errorf("default unit cannot be blank: %w", apperr.ErrInvalidArgument)
		}
		updates["default_unit"] = strings.TrimSpace(*input.DefaultUnit)
	}
	if input.Allergens != nil {
		labels, lErr := normalizeAllergenLabels(*input.Allergens)
		if lErr != nil {
			return nil, lErr
		}
		// Recipes keep their stored allergen set until their next line edit
		// re-derives it; ingredient edits do not fan out.
		updates["allergens"] = datatypes.NewJSONSlice(labels)
	}
	if input.Supplier != nil {
		updates["supplier"] = *input.Supplier
	}
	if input.CostPerUnit != nil {
		updates["cost_per_unit"] = *input.CostPerUnit
	}

	if len(updates) > 0 {
		if err := s.ingredientRepo.Update(ctx, nil, rd.TenantID, ingredientID, updates); err != nil {
			return nil, err
		}
	}
	return s.ingredientRepo.GetByID(ctx, nil, rd.TenantID, ingredientID)
}

func (s *ingredientService) Delete(ctx context.Context, ingredientID uuid.UUID) error {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return err
	}
	return s.ingredientRepo.Delete(ctx, nil, rd.TenantID, ingredientID)
}
