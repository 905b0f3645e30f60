package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
	"github.com/platewise/platewise-backend/internal/pkg/units"
)

type CreateInventoryItemInput struct {
	IngredientID    uuid.UUID  `json:"ingredient_id"`
	LocationID      *uuid.UUID `json:"location_id"`
	BatchNumber     string     `json:"batch_number"`
	Quantity        float64    `json:"quantity"`
	Unit            string     `json:"unit"`
	DeliveryDate    time.Time  `json:"delivery_date"`
	ExpiryDate      time.Time  `json:"expiry_date"`
	StorageLocation string     `json:"storage_location"`
	Supplier        string     `json:"supplier"`
	Cost            float64    `json:"cost"`
}

type UpdateInventoryItemInput struct {
	LocationID      *uuid.UUID `json:"location_id"`
	BatchNumber     *string    `json:"batch_number"`
	Quantity        *float64   `json:"quantity"`
	Unit            *string    `json:"unit"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	StorageLocation *string    `json:"storage_location"`
	Supplier        *string    `json:"supplier"`
	Cost            *float64   `json:"cost"`
}

type InventoryService interface {
	Create(ctx context.Context, input CreateInventoryItemInput) (*types.InventoryItem, error)
	GetByID(ctx context.Context, itemID uuid.UUID) (*types.InventoryItem, error)
	List(ctx context.Context, filters map[string]any) ([]*types.InventoryItem, error)
	LowStockItems(ctx context.Context, thresholds map[uuid.UUID]float64) ([]*types.InventoryItem, error)
	ListByIngredient(ctx context.Context, ingredientID uuid.UUID) ([]*types.InventoryItem, error)
	// TotalByIngredient sums active stock across batches, converted into the
	// ingredient's default unit. Batches in an incompatible unit are skipped
	// with a warning rather than failing the whole total.
	TotalByIngredient(ctx context.Context, ingredientID uuid.UUID) (*IngredientStock, error)
	Update(ctx context.Context, itemID uuid.UUID, input UpdateInventoryItemInput) (*types.InventoryItem, error)
	// AdjustQuantity applies a signed delta; an adjustment that would take the
	// quantity below zero is rejected.
	AdjustQuantity(ctx context.Context, itemID uuid.UUID, delta float64) (*types.InventoryItem, error)
	Delete(ctx context.Context, itemID uuid.UUID) error
}

type inventoryService struct {
	db             *gorm.DB
	log            *logger.Logger
	inventoryRepo  repos.InventoryItemRepo
	ingredientRepo repos.IngredientRepo
	locationRepo   repos.LocationRepo
}

func NewInventoryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	inventoryRepo repos.InventoryItemRepo,
	ingredientRepo repos.IngredientRepo,
	locationRepo repos.LocationRepo,
) InventoryService {
	return &inventoryService{
		db:             db,
		log:            baseLog.With("service", "inventory"),
		inventoryRepo:  inventoryRepo,
		ingredientRepo: ingredientRepo,
		locationRepo:   locationRepo,
	}
}

func (s *inventoryService) Create(ctx context.Context, input CreateInventoryItemInput) (*types.InventoryItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if input.IngredientID == uuid.Nil {
		return nil, fmt.Errorf("ingredient id is required: %w", apperr.ErrInvalidArgument)
	}
	if strings.TrimSpace(input.Unit) == "" {
		return nil, fmt.Errorf("unit is required: %w", apperr.ErrInvalidArgument)
	}
	if math.IsNaN(input.Quantity) || input.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative: %w", apperr.ErrInvalidArgument)
	}
	if input.DeliveryDate.IsZero() || input.ExpiryDate.IsZero() {
		return nil, fmt.Errorf("delivery and expiry dates are required: %w", apperr.ErrInvalidArgument)
	}
	if input.ExpiryDate.Before(input.DeliveryDate) {
		return nil, fmt.Errorf("expiry date cannot precede delivery date: %w", apperr.ErrInvalidArgument)
	}

	var created *types.InventoryItem
	txErr := runInTx(ctx, s.db, func(tx *gorm.DB) error {
		if _, iErr := s.ingredientRepo.GetByID(ctx, tx, rd.TenantID, input.IngredientID); iErr != nil {
			return fmt.Errorf("resolving ingredient: %w", iErr)
		}
		if input.LocationID != nil {
			if _, lErr := s.locationRepo.GetByID(ctx, tx, rd.TenantID, *input.LocationID); lErr != nil {
				return fmt.Errorf("resolving location: %w", lErr)
			}
		}
		item := &types.InventoryItem{
			TenantID:        rd.TenantID,
			IngredientID:    input.IngredientID,
			LocationID:      input.LocationID,
			BatchNumber:     input.BatchNumber,
			Quantity:        input.Quantity,
			Unit:            input.Unit,
			DeliveryDate:    input.DeliveryDate,
			ExpiryDate:      input.ExpiryDate,
			StorageLocation: input.StorageLocation,
			Supplier:        input.Supplier,
			Cost:            input.Cost,
			IsActive:        true,
			CreatedBy:       rd.UserID,
		}
		var cErr error
		created, cErr = s.inventoryRepo.Create(ctx, tx, item)
		return cErr
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

func (s *inventoryService) GetByID(ctx context.Context, itemID uuid.UUID) (*types.InventoryItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.inventoryRepo.GetByID(ctx, nil, rd.TenantID, itemID)
}

func (s *inventoryService) List(ctx context.Context, filters map[string]any) ([]*types.InventoryItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.inventoryRepo.ListByTenant(ctx, nil, rd.TenantID, filters)
}

// LowStockItems returns active items whose quantity sits below the caller's
// per-ingredient threshold. Ingredients absent from the map are not reported.
func (s *inventoryService) LowStockItems(ctx context.Context, thresholds map[uuid.UUID]float64) ([]*types.InventoryItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("thresholds are required: %w", apperr.ErrInvalidArgument)
	}
	items, err := s.inventoryRepo.ListByTenant(ctx, nil, rd.TenantID, nil)
	if err != nil {
		return nil, err
	}
	low := make([]*types.InventoryItem, 0)
	for _, item := range items {
		if threshold, ok := thresholds[item.IngredientID]; ok && item.Quantity < threshold {
			low = append(low, item)
		}
	}
	return low, nil
}

func (s *inventoryService) ListByIngredient(ctx context.Context, ingredientID uuid.UUID) ([]*types.InventoryItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.inventoryRepo.ListByIngredient(ctx, nil, rd.TenantID, ingredientID)
}

// IngredientStock is cross-batch stock expressed in the ingredient's default
// unit.
type IngredientStock struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
}

func (s *inventoryService) TotalByIngredient(ctx context.Context, ingredientID uuid.UUID) (*IngredientStock, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	ingredient, err := s.ingredientRepo.GetByID(ctx, nil, rd.TenantID, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("resolving ingredient: %w", err)
	}
	items, err := s.inventoryRepo.ListByIngredient(ctx, nil, rd.TenantID, ingredientID)
	if err != nil {
		return nil, err
	}

	total := &IngredientStock{IngredientID: ingredientID, Unit: ingredient.DefaultUnit}
	for _, item := range items {
		if item.Unit == ingredient.DefaultUnit {
			total.Quantity += item.Quantity
			continue
		}
		converted, cErr := units.Convert(item.Quantity, item.Unit, ingredient.DefaultUnit)
		if cErr != nil {
			s.log.Warn("skipping batch with inconvertible unit",
				"item_id", item.ID,
				"ingredient_id", ingredientID,
				"from", item.Unit,
				"to", ingredient.DefaultUnit,
				"error", cErr)
			continue
		}
		total.Quantity += converted
	}
	return total, nil
}

func (s *inventoryService) Update(ctx context.Context, itemID uuid.UUID, input UpdateInventoryItemInput) (*types.InventoryItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}

	var updated *types.InventoryItem
	txErr := runInTx(ctx, s.db, func(tx *gorm.DB) error {
		existing, gErr := s.inventoryRepo.GetByID(ctx, tx, rd.TenantID, itemID)
		if gErr != nil {
			return gErr
		}

		updates := map[string]any{}
		if input.LocationID != nil {
			if _, lErr := s.locationRepo.GetByID(ctx, tx, rd.TenantID, *input.LocationID); lErr != nil {
				return fmt.Errorf("resolving location: %w", lErr)
			}
			updates["location_id"] = *input.LocationID
		}
		if input.BatchNumber != nil {
			updates["batch_number"] = *input.BatchNumber
		}
		if input.Quantity != nil {
			if math.IsNaN(*input.Quantity) || *input.Quantity < 0 {
				return fmt.Errorf("quantity cannot be negative: %w", apperr.ErrInvalidArgument)
			}
			updates["quantity"] = *input.Quantity
		}
		if input.Unit != nil {
			if strings.TrimSpace(*input.Unit) == "" {
				return fmt.Errorf("unit cannot be blank: %w", apperr.ErrInvalidArgument)
			}
			updates["unit"] = *input.Unit
		}
		if input.ExpiryDate != nil {
			if input.ExpiryDate.Before(existing.DeliveryDate) {
				return fmt.Errorf("expiry date cannot precede delivery date: %w", apperr.ErrInvalidArgument)
			}
			updates["expiry_date"] = *input.ExpiryDate
		}
		if input.StorageLocation != nil {
			updates["storage_location"] = *input.StorageLocation
		}
		if input.Supplier != nil {
			updates["supplier"] = *input.Supplier
		}
		if input.Cost != nil {
			updates["cost"] = *input.Cost
		}
		if len(updates) == 0 {
			updated = existing
			return nil
		}

		if uErr := s.inventoryRepo.Update(ctx, tx, rd.TenantID, itemID, updates); uErr != nil {
			return uErr
		}
		var rErr error
		updated, rErr = s.inventoryRepo.GetByID(ctx, tx, rd.TenantID, itemID)
		return rErr
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func (s *inventoryService) AdjustQuantity(ctx context.Context, itemID uuid.UUID, delta float64) (*types.InventoryItem, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(delta) || delta == 0 {
		return nil, fmt.Errorf("adjustment delta must be a non-zero number: %w", apperr.ErrInvalidArgument)
	}
	return s.inventoryRepo.AdjustQuantity(ctx, nil, rd.TenantID, itemID, delta)
}

func (s *inventoryService) Delete(ctx context.Context, itemID uuid.UUID) error {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return err
	}
	return s.inventoryRepo.Deactivate(ctx, nil, rd.TenantID, itemID)
}
