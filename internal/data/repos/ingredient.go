package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/platewise/platewise-backend/internal/domain"
	pkgerrors "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type IngredientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ingredient *types.Ingredient) (*types.Ingredient, error)
	GetByID(ctx context.Context, tx *gorm.DB, tenantID, ingredientID uuid.UUID) (*types.Ingredient, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, ingredientIDs []uuid.UUID) ([]*types.Ingredient, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, filters map[string]any) ([]*types.Ingredient, error)
	Update(ctx context.Context, tx *gorm.DB, tenantID, ingredientID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, tenantID, ingredientID uuid.UUID) error
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return &ingredientRepo{db: db, log: baseLog.With("repo", "IngredientRepo")}
}

func (ir *ingredientRepo) Create(ctx context.Context, tx *gorm.DB, ingredient *types.Ingredient) (*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if err := transaction.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (ir *ingredientRepo) GetByID(ctx context.Context, tx *gorm.DB, tenantID, ingredientID uuid.UUID) (*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var result types.Ingredient
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, ingredientID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (ir *ingredientRepo) GetByIDs(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, ingredientIDs []uuid.UUID) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.Ingredient
	if len(ingredientIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ingredientIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *ingredientRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, filters map[string]any) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	query := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID)
	if len(filters) > 0 {
		query = query.Where(filters)
	}
	var results []*types.Ingredient
	if err := query.Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *ingredientRepo) Update(ctx context.Context, tx *gorm.DB, tenantID, ingredientID uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Ingredient{}).
		Where("tenant_id = ? AND id = ?", tenantID, ingredientID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (ir *ingredientRepo) Delete(ctx context.Context, tx *gorm.DB, tenantID, ingredientID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	res := transaction.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, ingredientID).
		Delete(&types.Ingredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
