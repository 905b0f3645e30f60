package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type CreateCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

type CategoryService interface {
	Create(ctx context.Context, input CreateCategoryInput) (*types.MenuItemCategory, error)
	GetByID(ctx context.Context, categoryID uuid.UUID) (*types.MenuItemCategory, error)
	List(ctx context.Context) ([]*types.MenuItemCategory, error)
	Update(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) (*types.MenuItemCategory, error)
	Delete(ctx context.Context, categoryID uuid.UUID) error
}

type categoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
}

func NewCategoryService(db *gorm.DB, baseLog *logger.Logger, categoryRepo repos.CategoryRepo) CategoryService {
	return &categoryService{
		db:           db,
		log:          baseLog.With("service", "category"),
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) Create(ctx context.Context, input CreateCategoryInput) (*types.MenuItemCategory, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("category name is required: %w", apperr.ErrInvalidArgument)
	}
	return s.categoryRepo.Create(ctx, nil, &types.MenuItemCategory{
		TenantID:    rd.TenantID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		SortOrder:   input.SortOrder,
	})
}

func (s *categoryService) GetByID(ctx context.Context, categoryID uuid.UUID) (*types.MenuItemCategory, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.GetByID(ctx, nil, rd.TenantID, categoryID)
}

func (s *categoryService) List(ctx context.Context) ([]*types.MenuItemCategory, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByTenant(ctx, nil, rd.TenantID)
}

func (s *categoryService) Update(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) (*types.MenuItemCategory, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("category name cannot be blank: %w", apperr.ErrInvalidArgument)
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.SortOrder != nil {
		updates["sort_order"] = *input.SortOrder
	}
	if len(updates) > 0 {
		if err := s.categoryRepo.Update(ctx, nil, rd.TenantID, categoryID, updates); err != nil {
			return nil, err
		}
	}
	return s.categoryRepo.GetByID(ctx, nil, rd.TenantID, categoryID)
}

func (s *categoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, nil, rd.TenantID, categoryID)
}
