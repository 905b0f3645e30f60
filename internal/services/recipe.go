package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type CreateRecipeInput struct {
	Name                    string                   `json:"name"`
	Description             string                   `json:"description"`
	CategoryID              *uuid.UUID               `json:"category_id"`
	Status                  string                   `json:"status"`
	Ingredients             []types.RecipeIngredient `json:"ingredients"`
	PreparationInstructions string                   `json:"preparation_instructions"`
	CookingInstructions     string                   `json:"cooking_instructions"`
	ServingSize             float64                  `json:"serving_size"`
	ServingUnit             string                   `json:"serving_unit"`
	SellPrice               float64                  `json:"sell_price"`
}

// UpdateRecipeInput uses pointers so absent fields are left untouched.
type UpdateRecipeInput struct {
	Name                    *string                   `json:"name"`
	Description             *string                   `json:"description"`
	CategoryID              *uuid.UUID                `json:"category_id"`
	Status                  *string                   `json:"status"`
	Ingredients             *[]types.RecipeIngredient `json:"ingredients"`
	PreparationInstructions *string                   `json:"preparation_instructions"`
	CookingInstructions     *string                   `json:"cooking_instructions"`
	ServingSize             *float64                  `json:"serving_size"`
	ServingUnit             *string                   `json:"serving_unit"`
	SellPrice               *float64                  `json:"sell_price"`
}

type RecipeService interface {
	Create(ctx context.Context, input CreateRecipeInput) (*types.Recipe, error)
	GetByID(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error)
	List(ctx context.Context, filters map[string]any) ([]*types.Recipe, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*types.Recipe, error)
	ListByStatus(ctx context.Context, status string) ([]*types.Recipe, error)
	ListByAllergen(ctx context.Context, allergen string) ([]*types.Recipe, error)
	Update(ctx context.Context, recipeID uuid.UUID, input UpdateRecipeInput) (*types.Recipe, error)
	Delete(ctx context.Context, recipeID uuid.UUID) error
}

type recipeService struct {
	db         *gorm.DB
	log        *logger.Logger
	recipeRepo repos.RecipeRepo
	aggregator AllergenAggregator
}

func NewRecipeService(db *gorm.DB, baseLog *logger.Logger, recipeRepo repos.RecipeRepo, aggregator AllergenAggregator) RecipeService {
	return &recipeService{
		db:         db,
		log:        baseLog.With("service", "recipe"),
		recipeRepo: recipeRepo,
		aggregator: aggregator,
	}
}

func validateRecipeLines(lines []types.RecipeIngredient) error {
	for i, line := range lines {
		if line.IngredientID == uuid.Nil {
			return fmt.Errorf("ingredient line %d is missing an ingredient id: %w", i, apperr.ErrInvalidArgument)
		}
		if strings.TrimSpace(line.Unit) == "" {
			return fmt.Errorf("ingredient line %d is missing a unit: %w", i, apperr.ErrInvalidArgument)
		}
		if math.IsNaN(line.Quantity) || line.Quantity < 0 {
			return fmt.Errorf("ingredient line %d has an invalid quantity: %w", i, apperr.ErrInvalidArgument)
		}
	}
	return nil
}

func (s *recipeService) Create(ctx context.Context, input CreateRecipeInput) (*types.Recipe, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("recipe name is required: %w", apperr.ErrInvalidArgument)
	}
	status := input.Status
	if status == "" {
		status = types.RecipeStatusDraft
	}
	if !types.ValidRecipeStatus(status) {
		return nil, fmt.Errorf("unknown recipe status %q: %w", status, apperr.ErrInvalidArgument)
	}
	if err := validateRecipeLines(input.Ingredients); err != nil {
		return nil, err
	}

	var created *types.Recipe
	txErr := runInTx(ctx, s.db, func(tx *gorm.DB) error {
		allergens, unresolved, aErr := s.aggregator.Aggregate(ctx, tx, rd.TenantID, input.Ingredients)
		if aErr != nil {
			return fmt.Errorf("aggregating allergens: %w", aErr)
		}
		if unresolved > 0 {
			s.log.Warn("recipe created with unresolved ingredient lines",
				"tenant_id", rd.TenantID, "unresolved", unresolved)
		}
		recipe := &types.Recipe{
			TenantID:                rd.TenantID,
			Name:                    strings.TrimSpace(input.Name),
			Description:             input.Description,
			CategoryID:              input.CategoryID,
			Version:                 1,
			Status:                  status,
			Ingredients:             datatypes.NewJSONSlice(input.Ingredients),
			Allergens:               datatypes.NewJSONSlice(allergens),
			PreparationInstructions: input.PreparationInstructions,
			CookingInstructions:     input.CookingInstructions,
			ServingSize:             input.ServingSize,
			ServingUnit:             input.ServingUnit,
			SellPrice:               input.SellPrice,
			IsActive:                true,
			CreatedBy:               rd.UserID,
		}
		var cErr error
		created, cErr = s.recipeRepo.Create(ctx, tx, recipe)
		if cErr != nil {
			return fmt.Errorf("creating recipe: %w", cErr)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

func (s *recipeService) GetByID(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.recipeRepo.GetByID(ctx, nil, rd.TenantID, recipeID)
}

func (s *recipeService) List(ctx context.Context, filters map[string]any) ([]*types.Recipe, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.recipeRepo.ListByTenant(ctx, nil, rd.TenantID, filters)
}

func (s *recipeService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*types.Recipe, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.recipeRepo.ListByCategory(ctx, nil, rd.TenantID, categoryID)
}

func (s *recipeService) ListByStatus(ctx context.Context, status string) ([]*types.Recipe, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if !types.ValidRecipeStatus(status) {
		return nil, fmt.Errorf("unknown recipe status %q: %w", status, apperr.ErrInvalidArgument)
	}
	return s.recipeRepo.ListByStatus(ctx, nil, rd.TenantID, status)
}

func (s *recipeService) ListByAllergen(ctx context.Context, allergen string) ([]*types.Recipe, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(allergen) == "" {
		return nil, fmt.Errorf("allergen is required: %w", apperr.ErrInvalidArgument)
	}
	return s.recipeRepo.ListByAllergen(ctx, nil, rd.TenantID, allergen)
}

func (s *recipeService) Update(ctx context.Context, recipeID uuid.UUID, input UpdateRecipeInput) (*types.Recipe, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}

	var updated *types.Recipe
	txErr := runInTx(ctx, s.db, func(tx *gorm.DB) error {
		existing, gErr := s.recipeRepo.GetByID(ctx, tx, rd.TenantID, recipeID)
		if gErr != nil {
			return gErr
		}

		updates := map[string]any{"updated_by": rd.UserID}
		if input.Name != nil {
			if strings.TrimSpace(*input.Name) == "" {
				return fmt.Errorf("recipe name cannot be blank: %w", apperr.ErrInvalidArgument)
			}
			updates["name"] = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.CategoryID != nil {
			updates["category_id"] = *input.CategoryID
		}
		if input.PreparationInstructions != nil {
			updates["preparation_instructions"] = *input.PreparationInstructions
		}
		if input.CookingInstructions != nil {
			updates["cooking_instructions"] = *input.CookingInstructions
		}
		if input.ServingSize != nil {
			updates["serving_size"] = *input.ServingSize
		}
		if input.ServingUnit != nil {
			updates["serving_unit"] = *input.ServingUnit
		}
		if input.SellPrice != nil {
			updates["sell_price"] = *input.SellPrice
		}

		if input.Ingredients != nil {
			if vErr := validateRecipeLines(*input.Ingredients); vErr != nil {
				return vErr
			}
			allergens, unresolved, aErr := s.aggregator.Aggregate(ctx, tx, rd.TenantID, *input.Ingredients)
			if aErr != nil {
				return fmt.Errorf("aggregating allergens: %w", aErr)
			}
			if unresolved > 0 {
				s.log.Warn("recipe updated with unresolved ingredient lines",
					"tenant_id", rd.TenantID, "recipe_id", recipeID, "unresolved", unresolved)
			}
			updates["ingredients"] = datatypes.NewJSONSlice(*input.Ingredients)
			updates["allergens"] = datatypes.NewJSONSlice(allergens)
		}

		if input.Status != nil {
			if !types.ValidRecipeStatus(*input.Status) {
				return fmt.Errorf("unknown recipe status %q: %w", *input.Status, apperr.ErrInvalidArgument)
			}
			updates["status"] = *input.Status
			// The version counts publications: it bumps only when the recipe
			// moves from a non-active status to active.
			if existing.Status != types.RecipeStatusActive && *input.Status == types.RecipeStatusActive {
				updates["version"] = existing.Version + 1
			}
		}

		if uErr := s.recipeRepo.Update(ctx, tx, rd.TenantID, recipeID, updates); uErr != nil {
			return uErr
		}
		var rErr error
		updated, rErr = s.recipeRepo.GetByID(ctx, tx, rd.TenantID, recipeID)
		return rErr
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (s *recipeService) Delete(ctx context.Context, recipeID uuid.UUID) error {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return err
	}
	return s.recipeRepo.Deactivate(ctx, nil, rd.TenantID, recipeID)
}
