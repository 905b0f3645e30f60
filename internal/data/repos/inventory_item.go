package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/platewise/platewise-backend/internal/domain"
	pkgerrors "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type InventoryItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.InventoryItem) (*types.InventoryItem, error)
	GetByID(ctx context.Context, tx *gorm.DB, tenantID, itemID uuid.UUID) (*types.InventoryItem, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, filters map[string]any) ([]*types.InventoryItem, error)
	ListByIngredient(ctx context.Context, tx *gorm.DB, tenantID, ingredientID uuid.UUID) ([]*types.InventoryItem, error)
	// ListExpiringBetween returns active items with from <= expiry_date < to,
	// optionally narrowed to one location, ordered by expiry ascending.
	ListExpiringBetween(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, from, to time.Time, locationID *uuid.UUID) ([]*types.InventoryItem, error)
	// ListExpiredBefore returns active items with expiry_date < cutoff.
	ListExpiredBefore(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, cutoff time.Time, locationID *uuid.UUID) ([]*types.InventoryItem, error)
	AdjustQuantity(ctx context.Context, tx *gorm.DB, tenantID, itemID uuid.UUID, delta float64) (*types.InventoryItem, error)
	Update(ctx context.Context, tx *gorm.DB, tenantID, itemID uuid.UUID, updates map[string]any) error
	Deactivate(ctx context.Context, tx *gorm.DB, tenantID, itemID uuid.UUID) error
}

type inventoryItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInventoryItemRepo(db *gorm.DB, baseLog *logger.Logger) InventoryItemRepo {
	return &inventoryItemRepo{db: db, log: baseLog.With("repo", "InventoryItemRepo")}
}

func (ir *inventoryItemRepo) Create(ctx context.Context, tx *gorm.DB, item *types.InventoryItem) (*types.InventoryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if err := transaction.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (ir *inventoryItemRepo) GetByID(ctx context.Context, tx *gorm.DB, tenantID, itemID uuid.UUID) (*types.InventoryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var result types.InventoryItem
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND id = ? AND is_active = ?", tenantID, itemID, true).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (ir *inventoryItemRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, filters map[string]any) ([]*types.InventoryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	query := transaction.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true)
	if len(filters) > 0 {
		query = query.Where(filters)
	}
	var results []*types.InventoryItem
	if err := query.Order("expiry_date ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *inventoryItemRepo) ListByIngredient(ctx context.Context, tx *gorm.DB, tenantID, ingredientID uuid.UUID) ([]*types.InventoryItem, error) {
	return ir.ListByTenant(ctx, tx, tenantID, map[string]any{"ingredient_id": ingredientID})
}

func (ir *inventoryItemRepo) ListExpiringBetween(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, from, to time.Time, locationID *uuid.UUID) ([]*types.InventoryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	query := transaction.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Where("expiry_date >= ? AND expiry_date < ?", from, to)
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}
	var results []*types.InventoryItem
	if err := query.Order("expiry_date ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *inventoryItemRepo) ListExpiredBefore(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, cutoff time.Time, locationID *uuid.UUID) ([]*types.InventoryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	query := transaction.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Where("expiry_date < ?", cutoff)
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}
	var results []*types.InventoryItem
	if err := query.Order("expiry_date ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *inventoryItemRepo) AdjustQuantity(ctx context.Context, tx *gorm.DB, tenantID, itemID uuid.UUID, delta float64) (*types.InventoryItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.InventoryItem{}).
		Where("tenant_id = ? AND id = ? AND is_active = ?", tenantID, itemID, true).
		Where("quantity + ? >= 0", delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the item is missing or the adjustment would go negative.
		if _, err := ir.GetByID(ctx, tx, tenantID, itemID); err != nil {
			return nil, err
		}
		return nil, pkgerrors.ErrInvalidArgument
	}
	return ir.GetByID(ctx, tx, tenantID, itemID)
}

func (ir *inventoryItemRepo) Update(ctx context.Context, tx *gorm.DB, tenantID, itemID uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.InventoryItem{}).
		Where("tenant_id = ? AND id = ? AND is_active = ?", tenantID, itemID, true).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (ir *inventoryItemRepo) Deactivate(ctx context.Context, tx *gorm.DB, tenantID, itemID uuid.UUID) error {
	return ir.Update(ctx, tx, tenantID, itemID, map[string]any{"is_active": false})
}
