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

type AllergenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, allergen *types.Allergen) (*types.Allergen, error)
	GetByID(ctx context.Context, tx *gorm.DB, allergenID uuid.UUID) (*types.Allergen, error)
	ListSystem(ctx context.Context, tx *gorm.DB) ([]*types.Allergen, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Allergen, error)
	// ListAccessible returns the system set plus the tenant's own allergens.
	ListAccessible(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Allergen, error)
	SystemNameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, allergenID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, allergenID uuid.UUID) error
}

type allergenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAllergenRepo(db *gorm.DB, baseLog *logger.Logger) AllergenRepo {
	return &allergenRepo{db: db, log: baseLog.With("repo", "AllergenRepo")}
}

func (ar *allergenRepo) Create(ctx context.Context, tx *gorm.DB, allergen *types.Allergen) (*types.Allergen, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Create(allergen).Error; err != nil {
		return nil, err
	}
	return allergen, nil
}

func (ar *allergenRepo) GetByID(ctx context.Context, tx *gorm.DB, allergenID uuid.UUID) (*types.Allergen, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var result types.Allergen
	if err := transaction.WithContext(ctx).
		Where("id = ?", allergenID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (ar *allergenRepo) ListSystem(ctx context.Context, tx *gorm.DB) ([]*types.Allergen, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Allergen
	if err := transaction.WithContext(ctx).
		Where("is_system_level = ?", true).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *allergenRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Allergen, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Allergen
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *allergenRepo) ListAccessible(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Allergen, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Allergen
	if err := transaction.WithContext(ctx).
		Where("is_system_level = ? OR tenant_id = ?", true, tenantID).
		Order("is_system_level DESC, name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *allergenRepo) SystemNameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Allergen{}).
		Where("is_system_level = ? AND name = ?", true, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *allergenRepo) Update(ctx context.Context, tx *gorm.DB, allergenID uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Allergen{}).
		Where("id = ?", allergenID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (ar *allergenRepo) Delete(ctx context.Context, tx *gorm.DB, allergenID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ?", allergenID).
		Delete(&types.Allergen{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
