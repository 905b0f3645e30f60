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

type TenantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tenant *types.Tenant) (*types.Tenant, error)
	GetByID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (*types.Tenant, error)
	Update(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, updates map[string]any) error
	Deactivate(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) error
}

type tenantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTenantRepo(db *gorm.DB, baseLog *logger.Logger) TenantRepo {
	return &tenantRepo{db: db, log: baseLog.With("repo", "TenantRepo")}
}

func (tr *tenantRepo) Create(ctx context.Context, tx *gorm.DB, tenant *types.Tenant) (*types.Tenant, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if err := transaction.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

func (tr *tenantRepo) GetByID(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (*types.Tenant, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.Tenant
	if err := transaction.WithContext(ctx).
		Where("id = ?", tenantID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (tr *tenantRepo) Update(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Tenant{}).
		Where("id = ?", tenantID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (tr *tenantRepo) Deactivate(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) error {
	return tr.Update(ctx, tx, tenantID, map[string]any{"is_active": false})
}
