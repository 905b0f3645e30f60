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

type SubscriptionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sub *types.Subscription) (*types.Subscription, error)
	GetByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (*types.Subscription, error)
	Update(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, updates map[string]any) error
	Cancel(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) error
	// ListAll reads across every tenant and is reserved for the platform
	// operator surface.
	ListAll(ctx context.Context, tx *gorm.DB, filters map[string]any) ([]*types.Subscription, error)
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	return &subscriptionRepo{db: db, log: baseLog.With("repo", "SubscriptionRepo")}
}

func (sr *subscriptionRepo) Create(ctx context.Context, tx *gorm.DB, sub *types.Subscription) (*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

func (sr *subscriptionRepo) GetByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Subscription
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (sr *subscriptionRepo) Update(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Subscription{}).
		Where("tenant_id = ?", tenantID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (sr *subscriptionRepo) ListAll(ctx context.Context, tx *gorm.DB, filters map[string]any) ([]*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	query := transaction.WithContext(ctx).Model(&types.Subscription{})
	if len(filters) > 0 {
		query = query.Where(filters)
	}
	var results []*types.Subscription
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *subscriptionRepo) Cancel(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) error {
	now := time.Now().UTC()
	return sr.Update(ctx, tx, tenantID, map[string]any{
		"status":      types.SubscriptionStatusCanceled,
		"canceled_at": now,
	})
}
