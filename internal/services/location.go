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

type CreateLocationInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type UpdateLocationInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

type LocationService interface {
	Create(ctx context.Context, input CreateLocationInput) (*types.Location, error)
	GetByID(ctx context.Context, locationID uuid.UUID) (*types.Location, error)
	List(ctx context.Context) ([]*types.Location, error)
	Update(ctx context.Context, locationID uuid.UUID, input UpdateLocationInput) (*types.Location, error)
}

type locationService struct {
	db           *gorm.DB
	log          *logger.Logger
	locationRepo repos.LocationRepo
}

func NewLocationService(db *gorm.DB, baseLog *logger.Logger, locationRepo repos.LocationRepo) LocationService {
	return &locationService{
		db:           db,
		log:          baseLog.With("service", "location"),
		locationRepo: locationRepo,
	}
}

func (s *locationService) Create(ctx context.Context, input CreateLocationInput) (*types.Location, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("location name is required: %w", apperr.ErrInvalidArgument)
	}
	return s.locationRepo.Create(ctx, nil, &types.Location{
		TenantID: rd.TenantID,
		Name:     strings.TrimSpace(input.Name),
		Address:  input.Address,
		IsActive: true,
	})
}

func (s *locationService) GetByID(ctx context.Context, locationID uuid.UUID) (*types.Location, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.locationRepo.GetByID(ctx, nil, rd.TenantID, locationID)
}

func (s *locationService) List(ctx context.Context) ([]*types.Location, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.locationRepo.ListByTenant(ctx, nil, rd.TenantID)
}

func (s *locationService) Update(ctx context.Context, locationID uuid.UUID, input UpdateLocationInput) (*types.Location, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("location name cannot be blank: %w", apperr.ErrInvalidArgument)
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if len(updates) > 0 {
		if err := s.locationRepo.Update(ctx, nil, rd.TenantID, locationID, updates); err != nil {
			return nil, err
		}
	}
	return s.locationRepo.GetByID(ctx, nil, rd.TenantID, locationID)
}
