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

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, tenantID, userID uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.User, error)
	CountByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, tenantID, userID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, tenantID, userID uuid.UUID) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if err := transaction.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, tenantID, userID uuid.UUID) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result types.User
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result types.User
	if err := transaction.WithContext(ctx).
		Where("email = ?", email).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.User
	if err := transaction.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) CountByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ur *userRepo) Update(ctx context.Context, tx *gorm.DB, tenantID, userID uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("tenant_id = ? AND id = ?", tenantID, userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (ur *userRepo) Delete(ctx context.Context, tx *gorm.DB, tenantID, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	res := transaction.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, userID).
		Delete(&types.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
