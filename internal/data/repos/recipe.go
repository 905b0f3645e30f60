package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/platewise/platewise-backend/internal/domain"
	pkgerrors "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type RecipeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error)
	GetByID(ctx context.Context, tx *gorm.DB, tenantID, recipeID uuid.UUID) (*types.Recipe, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, filters map[string]any) ([]*types.Recipe, error)
	ListByCategory(ctx context.Context, tx *gorm.DB, tenantID, categoryID uuid.UUID) ([]*types.Recipe, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, status string) ([]*types.Recipe, error)
	ListByAllergen(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, allergen string) ([]*types.Recipe, error)
	CountByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, tenantID, recipeID uuid.UUID, updates map[string]any) error
	Deactivate(ctx context.Context, tx *gorm.DB, tenantID, recipeID uuid.UUID) error
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: baseLog.With("repo", "RecipeRepo")}
}

func (rr *recipeRepo) Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if err := transaction.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func (rr *recipeRepo) GetByID(ctx context.Context, tx *gorm.DB, tenantID, recipeID uuid.UUID) (*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.Recipe
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND id = ? AND is_active = ?", tenantID, recipeID, true).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (rr *recipeRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, filters map[string]any) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	query := transaction.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true)
	if len(filters) > 0 {
		query = query.Where(filters)
	}
	var results []*types.Recipe
	if err := query.Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recipeRepo) ListByCategory(ctx context.Context, tx *gorm.DB, tenantID, categoryID uuid.UUID) ([]*types.Recipe, error) {
	return rr.ListByTenant(ctx, tx, tenantID, map[string]any{"category_id": categoryID})
}

func (rr *recipeRepo) ListByStatus(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, status string) ([]*types.Recipe, error) {
	return rr.ListByTenant(ctx, tx, tenantID, map[string]any{"status": status})
}

func (rr *recipeRepo) ListByAllergen(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, allergen string) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Recipe
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Where(datatypes.JSONArrayQuery("allergens").Contains(allergen)).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recipeRepo) CountByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Recipe{}).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (rr *recipeRepo) Update(ctx context.Context, tx *gorm.DB, tenantID, recipeID uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Recipe{}).
		Where("tenant_id = ? AND id = ? AND is_active = ?", tenantID, recipeID, true).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

// Deactivate is the logical delete: rows stay in place so published label
// content keeps resolving, but every tenant-scoped query stops seeing them.
func (rr *recipeRepo) Deactivate(ctx context.Context, tx *gorm.DB, tenantID, recipeID uuid.UUID) error {
	return rr.Update(ctx, tx, tenantID, recipeID, map[string]any{"is_active": false})
}
