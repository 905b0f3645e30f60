package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/platewise-backend/internal/clients/redis"
	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

// UsageSummary reports current consumption against the subscription's limits.
type UsageSummary struct {
	Plan   string `json:"plan"`
	Status string `json:"status"`

	Users           UsageEntry         `json:"users"`
	Locations       UsageEntry         `json:"locations"`
	Recipes         UsageEntry         `json:"recipes"`
	LabelsThisMonth UsageEntry         `json:"labels_this_month"`
	FeatureFlags    types.PlanFeatures `json:"feature_flags"`
}

type UsageEntry struct {
	Current int64 `json:"current"`
	Limit   int   `json:"limit"`
}

type UsageService interface {
	// The Check methods answer "may one more be created right now" for the
	// tenant in ctx. A false return with nil error means the quota is full.
	CheckUserLimit(ctx context.Context, tenantID uuid.UUID) (bool, error)
	CheckLocationLimit(ctx context.Context, tenantID uuid.UUID) (bool, error)
	CheckRecipeLimit(ctx context.Context, tenantID uuid.UUID) (bool, error)
	CheckLabelLimit(ctx context.Context, tenantID uuid.UUID) (bool, error)
	CheckFeatureAccess(ctx context.Context, tenantID uuid.UUID, featureKey string) (bool, error)

	LabelCountThisMonth(ctx context.Context, tenantID uuid.UUID) (int64, error)
	RecordLabelPrinted(ctx context.Context, tenantID uuid.UUID)
	GetSummary(ctx context.Context) (*UsageSummary, error)
}

type usageService struct {
	log          *logger.Logger
	subscription SubscriptionService
	userRepo     repos.UserRepo
	locationRepo repos.LocationRepo
	recipeRepo   repos.RecipeRepo
	labelRepo    repos.LabelRepo
	cache        redis.UsageCache
}

func NewUsageService(
	baseLog *logger.Logger,
	subscription SubscriptionService,
	userRepo repos.UserRepo,
	locationRepo repos.LocationRepo,
	recipeRepo repos.RecipeRepo,
	labelRepo repos.LabelRepo,
	cache redis.UsageCache,
) UsageService {
	return &usageService{
		log:          baseLog.With("service", "usage"),
		subscription: subscription,
		userRepo:     userRepo,
		locationRepo: locationRepo,
		recipeRepo:   recipeRepo,
		labelRepo:    labelRepo,
		cache:        cache,
	}
}

// monthWindow returns the UTC calendar month containing now as a half-open
// [start, next-month-start) interval.
func monthWindow(now time.Time) (time.Time, time.Time) {
	y, m, _ := now.UTC().Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (s *usageService) CheckUserLimit(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	count, err := s.userRepo.CountByTenant(ctx, nil, tenantID)
	if err != nil {
		return false, err
	}
	return s.subscription.CheckLimits(ctx, tenantID, types.FeatureMaxUsers, count)
}

func (s *usageService) CheckLocationLimit(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	count, err := s.locationRepo.CountByTenant(ctx, nil, tenantID)
	if err != nil {
		return false, err
	}
	return s.subscription.CheckLimits(ctx, tenantID, types.FeatureMaxLocations, count)
}

func (s *usageService) CheckRecipeLimit(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	count, err := s.recipeRepo.CountByTenant(ctx, nil, tenantID)
	if err != nil {
		return false, err
	}
	return s.subscription.CheckLimits(ctx, tenantID, types.FeatureMaxRecipes, count)
}

func (s *usageService) CheckLabelLimit(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	count, err := s.LabelCountThisMonth(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return s.subscription.CheckLimits(ctx, tenantID, types.FeatureMaxLabelsPerMonth, count)
}

func (s *usageService) CheckFeatureAccess(ctx context.Context, tenantID uuid.UUID, featureKey string) (bool, error) {
	return s.subscription.CheckLimits(ctx, tenantID, featureKey, 0)
}

// LabelCountThisMonth prefers the cache and falls back to counting rows,
// re-priming the cache on a miss. The count window resets at the first of
// each calendar month.
func (s *usageService) LabelCountThisMonth(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	from, to := monthWindow(time.Now())

	if s.cache != nil {
		if count, found, err := s.cache.GetLabelCount(ctx, tenantID, from); err == nil && found {
			return count, nil
		} else if err != nil {
			s.log.Warn("label count cache read failed", "tenant_id", tenantID, "error", err)
		}
	}

	count, err := s.labelRepo.CountCreatedBetween(ctx, nil, tenantID, from, to)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.SetLabelCount(ctx, tenantID, from, count); err != nil {
			s.log.Warn("label count cache prime failed", "tenant_id", tenantID, "error", err)
		}
	}
	return count, nil
}

func (s *usageService) RecordLabelPrinted(ctx context.Context, tenantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	from, _ := monthWindow(time.Now())
	if err := s.cache.IncrLabelCount(ctx, tenantID, from); err != nil {
		s.log.Warn("label count cache increment failed", "tenant_id", tenantID, "error", err)
	}
}

func (s *usageService) GetSummary(ctx context.Context) (*UsageSummary, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	sub, err := s.subscription.GetForTenant(ctx)
	if err != nil {
		return nil, err
	}
	features := sub.Features.Data()

	users, err := s.userRepo.CountByTenant(ctx, nil, rd.TenantID)
	if err != nil {
		return nil, err
	}
	locations, err := s.locationRepo.CountByTenant(ctx, nil, rd.TenantID)
	if err != nil {
		return nil, err
	}
	recipes, err := s.recipeRepo.CountByTenant(ctx, nil, rd.TenantID)
	if err != nil {
		return nil, err
	}
	labels, err := s.LabelCountThisMonth(ctx, rd.TenantID)
	if err != nil {
		return nil, err
	}

	return &UsageSummary{
		Plan:            sub.Plan,
		Status:          sub.Status,
		Users:           UsageEntry{Current: users, Limit: features.MaxUsers},
		Locations:       UsageEntry{Current: locations, Limit: features.MaxLocations},
		Recipes:         UsageEntry{Current: recipes, Limit: features.MaxRecipes},
		LabelsThisMonth: UsageEntry{Current: labels, Limit: features.MaxLabelsPerMonth},
		FeatureFlags:    features,
	}, nil
}
