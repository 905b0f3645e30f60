package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type CreateLabelInput struct {
	Type            string         `json:"type"`
	RecipeID        *uuid.UUID     `json:"recipe_id"`
	InventoryItemID *uuid.UUID     `json:"inventory_item_id"`
	Content         map[string]any `json:"content"`
}

type LabelService interface {
	Create(ctx context.Context, input CreateLabelInput) (*types.Label, error)
	GetByID(ctx context.Context, labelID uuid.UUID) (*types.Label, error)
	List(ctx context.Context, filters map[string]any) ([]*types.Label, error)
}

type labelService struct {
	db            *gorm.DB
	log           *logger.Logger
	labelRepo     repos.LabelRepo
	recipeRepo    repos.RecipeRepo
	inventoryRepo repos.InventoryItemRepo
	usage         UsageService
}

func NewLabelService(
	db *gorm.DB,
	baseLog *logger.Logger,
	labelRepo repos.LabelRepo,
	recipeRepo repos.RecipeRepo,
	inventoryRepo repos.InventoryItemRepo,
	usage UsageService,
) LabelService {
	return &labelService{
		db:            db,
		log:           baseLog.With("service", "label"),
		labelRepo:     labelRepo,
		recipeRepo:    recipeRepo,
		inventoryRepo: inventoryRepo,
		usage:         usage,
	}
}

func (s *labelService) Create(ctx context.Context, input CreateLabelInput) (*types.Label, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if !types.ValidLabelType(input.Type) {
		return nil, fmt.Errorf("unknown label type %q: %w", input.Type, apperr.ErrInvalidArgument)
	}
	if input.RecipeID == nil && input.InventoryItemID == nil {
		return nil, fmt.Errorf("label needs a recipe or an inventory item: %w", apperr.ErrInvalidArgument)
	}

	var created *types.Label
	txErr := runInTx(ctx, s.db, func(tx *gorm.DB) error {
		if input.RecipeID != nil {
			if _, rErr := s.recipeRepo.GetByID(ctx, tx, rd.TenantID, *input.RecipeID); rErr != nil {
				return fmt.Errorf("resolving recipe: %w", rErr)
			}
		}
		if input.InventoryItemID != nil {
			if _, iErr := s.inventoryRepo.GetByID(ctx, tx, rd.TenantID, *input.InventoryItemID); iErr != nil {
				return fmt.Errorf("resolving inventory item: %w", iErr)
			}
		}

		var content datatypes.JSON
		if input.Content != nil {
			raw, mErr := json.Marshal(input.Content)
			if mErr != nil {
				return fmt.Errorf("encoding label content: %w", mErr)
			}
			content = datatypes.JSON(raw)
		}

		label := &types.Label{
			TenantID:        rd.TenantID,
			RecipeID:        input.RecipeID,
			InventoryItemID: input.InventoryItemID,
			Type:            input.Type,
			Content:         content,
			PrintedBy:       rd.UserID,
		}
		var cErr error
		created, cErr = s.labelRepo.Create(ctx, tx, label)
		return cErr
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.usage != nil {
		s.usage.RecordLabelPrinted(ctx, rd.TenantID)
	}
	return created, nil
}

func (s *labelService) GetByID(ctx context.Context, labelID uuid.UUID) (*types.Label, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.labelRepo.GetByID(ctx, nil, rd.TenantID, labelID)
}

func (s *labelService) List(ctx context.Context, filters map[string]any) ([]*types.Label, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.labelRepo.ListByTenant(ctx, nil, rd.TenantID, filters)
}
