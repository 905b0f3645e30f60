package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

// SubscriptionAnalytics is a cross-tenant breakdown for the platform operator.
type SubscriptionAnalytics struct {
	TotalSubscriptions int            `json:"total_subscriptions"`
	ByPlan             map[string]int `json:"by_plan"`
	ByStatus           map[string]int `json:"by_status"`
}

// AdminSubscriptionService exposes cross-tenant subscription data. Every
// operation requires the superadmin role; tenant-scoped callers are rejected
// regardless of their in-tenant role.
type AdminSubscriptionService interface {
	ListSubscriptions(ctx context.Context, plan, status string) ([]*types.Subscription, error)
	ListByPlan(ctx context.Context, plan string) ([]*types.Subscription, error)
	Analytics(ctx context.Context) (*SubscriptionAnalytics, error)
}

type adminSubscriptionService struct {
	db               *gorm.DB
	log              *logger.Logger
	subscriptionRepo repos.SubscriptionRepo
}

func NewAdminSubscriptionService(db *gorm.DB, baseLog *logger.Logger, subscriptionRepo repos.SubscriptionRepo) AdminSubscriptionService {
	return &adminSubscriptionService{
		db:               db,
		log:              baseLog.With("service", "admin_subscription"),
		subscriptionRepo: subscriptionRepo,
	}
}

func (s *adminSubscriptionService) requireSuperadmin(ctx context.Context) error {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return err
	}
	if rd.Role != types.RoleSuperadmin {
		return fmt.Errorf("cross-tenant subscription data requires the superadmin role: %w", apperr.ErrForbidden)
	}
	return nil
}

func (s *adminSubscriptionService) ListSubscriptions(ctx context.Context, plan, status string) ([]*types.Subscription, error) {
	if err := s.requireSuperadmin(ctx); err != nil {
		return nil, err
	}
	filters := map[string]any{}
	if plan != "" {
		if !types.ValidPlan(plan) {
			return nil, fmt.Errorf("unknown plan %q: %w", plan, apperr.ErrInvalidArgument)
		}
		filters["plan"] = plan
	}
	if status != "" {
		filters["status"] = status
	}
	return s.subscriptionRepo.ListAll(ctx, nil, filters)
}

func (s *adminSubscriptionService) ListByPlan(ctx context.Context, plan string) ([]*types.Subscription, error) {
	if err := s.requireSuperadmin(ctx); err != nil {
		return nil, err
	}
	if !types.ValidPlan(plan) {
		return nil, fmt.Errorf("unknown plan %q: %w", plan, apperr.ErrInvalidArgument)
	}
	return s.subscriptionRepo.ListAll(ctx, nil, map[string]any{"plan": plan})
}

func (s *adminSubscriptionService) Analytics(ctx context.Context) (*SubscriptionAnalytics, error) {
	if err := s.requireSuperadmin(ctx); err != nil {
		return nil, err
	}
	subs, err := s.subscriptionRepo.ListAll(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	analytics := &SubscriptionAnalytics{
		TotalSubscriptions: len(subs),
		ByPlan: map[string]int{
			types.PlanBasic:        0,
			types.PlanProfessional: 0,
			types.PlanEnterprise:   0,
			types.PlanCustom:       0,
		},
		ByStatus: map[string]int{
			types.SubscriptionStatusActive:   0,
			types.SubscriptionStatusTrialing: 0,
			types.SubscriptionStatusPastDue:  0,
			types.SubscriptionStatusCanceled: 0,
		},
	}
	for _, sub := range subs {
		analytics.ByPlan[sub.Plan]++
		analytics.ByStatus[sub.Status]++
	}
	return analytics, nil
}
