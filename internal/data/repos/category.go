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

type CategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, category *types.MenuItemCategory) (*types.MenuItemCategory, error)
	GetByID(ctx context.Context, tx *gorm.DB, tenantID, categoryID uuid.UUID) (*types.MenuItemCategory, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.MenuItemCategory, error)
	Update(ctx context.Context, tx *gorm.DB, tenantID, categoryID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, tenantID, categoryID uuid.UUID) error
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

func (cr *categoryRepo) Create(ctx context.Context, tx *gorm.DB, category *types.MenuItemCategory) (*types.MenuItemCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (cr *categoryRepo) GetByID(ctx context.Context, tx *gorm.DB, tenantID, categoryID uuid.UUID) (*types.MenuItemCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.MenuItemCategory
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, categoryID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (cr *categoryRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.MenuItemCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.MenuItemCategory
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sort_order ASC, name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *categoryRepo) Update(ctx context.Context, tx *gorm.DB, tenantID, categoryID uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.MenuItemCategory{}).
		Where("tenant_id = ? AND id = ?", tenantID, categoryID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (cr *categoryRepo) Delete(ctx context.Context, tx *gorm.DB, tenantID, categoryID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	res := transaction.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, categoryID).
		Delete(&types.MenuItemCategory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
