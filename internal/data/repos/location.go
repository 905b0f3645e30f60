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

type LocationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, location *types.Location) (*types.Location, error)
	GetByID(ctx context.Context, tx *gorm.DB, tenantID, locationID uuid.UUID) (*types.Location, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Location, error)
	CountByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, tenantID, locationID uuid.UUID, updates map[string]any) error
}

type locationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLocationRepo(db *gorm.DB, baseLog *logger.Logger) LocationRepo {
	return &locationRepo{db: db, log: baseLog.With("repo", "LocationRepo")}
}

func (lr *locationRepo) Create(ctx context.Context, tx *gorm.DB, location *types.Location) (*types.Location, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if err := transaction.WithContext(ctx).Create(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

func (lr *locationRepo) GetByID(ctx context.Context, tx *gorm.DB, tenantID, locationID uuid.UUID) (*types.Location, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var result types.Location
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, locationID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (lr *locationRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.Location, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var results []*types.Location
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *locationRepo) CountByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Location{}).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (lr *locationRepo) Update(ctx context.Context, tx *gorm.DB, tenantID, locationID uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Location{}).
		Where("tenant_id = ? AND id = ?", tenantID, locationID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
