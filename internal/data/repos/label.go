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

type LabelRepo interface {
	Create(ctx context.Context, tx *gorm.DB, label *types.Label) (*types.Label, error)
	GetByID(ctx context.Context, tx *gorm.DB, tenantID, labelID uuid.UUID) (*types.Label, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, filters map[string]any) ([]*types.Label, error)
	// CountCreatedBetween counts labels with from <= created_at < to.
	CountCreatedBetween(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, from, to time.Time) (int64, error)
}

type labelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLabelRepo(db *gorm.DB, baseLog *logger.Logger) LabelRepo {
	return &labelRepo{db: db, log: baseLog.With("repo", "LabelRepo")}
}

func (lr *labelRepo) Create(ctx context.Context, tx *gorm.DB, label *types.Label) (*types.Label, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if err := transaction.WithContext(ctx).Create(label).Error; err != nil {
		return nil, err
	}
	return label, nil
}

func (lr *labelRepo) GetByID(ctx context.Context, tx *gorm.DB, tenantID, labelID uuid.UUID) (*types.Label, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var result types.Label
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, labelID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (lr *labelRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, filters map[string]any) ([]*types.Label, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	query := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID)
	if len(filters) > 0 {
		query = query.Where(filters)
	}
	var results []*types.Label
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *labelRepo) CountCreatedBetween(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, from, to time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Label{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
