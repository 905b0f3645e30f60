package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/clients/email"
	"github.com/platewise/platewise-backend/internal/clients/payment"
	"github.com/platewise/platewise-backend/internal/data/repos"
	types "github.com/platewise/platewise-backend/internal/domain"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

// Payment event kinds accepted by HandlePaymentEvent. They follow the
// provider's webhook vocabulary.
const (
	PaymentEventPaymentSucceeded    = "invoice.payment_succeeded"
	PaymentEventPaymentFailed       = "invoice.payment_failed"
	PaymentEventSubscriptionDeleted = "customer.subscription.deleted"
)

type PaymentEvent struct {
	Type     string    `json:"type"`
	TenantID uuid.UUID `json:"tenant_id"`
	// OccurredAt stamps last_payment_date on successful payments; zero means
	// the receive time.
	OccurredAt time.Time `json:"occurred_at"`
}

type SubscriptionService interface {
	Create(ctx context.Context, plan, paymentMethodID string) (*types.Subscription, error)
	GetForTenant(ctx context.Context) (*types.Subscription, error)
	UpdatePlan(ctx context.Context, plan string) (*types.Subscription, error)
	Cancel(ctx context.Context) error

	// CheckLimits reports whether an operation gated by featureKey may proceed
	// for the tenant. currentCount is the pre-operation count for quota keys
	// and ignored for flag keys.
	CheckLimits(ctx context.Context, tenantID uuid.UUID, featureKey string, currentCount int64) (bool, error)

	HandlePaymentEvent(ctx context.Context, event PaymentEvent) error
}

type subscriptionService struct {
	db               *gorm.DB
	log              *logger.Logger
	subscriptionRepo repos.SubscriptionRepo
	tenantRepo       repos.TenantRepo
	provider         payment.Provider
	mailer           email.Client
}

func NewSubscriptionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	subscriptionRepo repos.SubscriptionRepo,
	tenantRepo repos.TenantRepo,
	provider payment.Provider,
	mailer email.Client,
) SubscriptionService {
	return &subscriptionService{
		db:               db,
		log:              baseLog.With("service", "subscription"),
		subscriptionRepo: subscriptionRepo,
		tenantRepo:       tenantRepo,
		provider:         provider,
		mailer:           mailer,
	}
}

func (s *subscriptionService) Create(ctx context.Context, plan, paymentMethodID string) (*types.Subscription, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	features, ok := types.PlanFeaturesFor(plan)
	if !ok {
		return nil, fmt.Errorf("unknown plan %q: %w", plan, apperr.ErrInvalidArgument)
	}

	tenant, err := s.tenantRepo.GetByID(ctx, nil, rd.TenantID)
	if err != nil {
		return nil, fmt.Errorf("loading tenant: %w", err)
	}
	if _, err := s.subscriptionRepo.GetByTenant(ctx, nil, rd.TenantID); err == nil {
		return nil, fmt.Errorf("tenant already has a subscription: %w", apperr.ErrInvalidArgument)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("checking existing subscription: %w", err)
	}

	customerID, err := s.provider.CreateCustomer(ctx, tenant.ID, tenant.ContactEmail, tenant.Name)
	if err != nil {
		return nil, fmt.Errorf("creating payment customer: %w", err)
	}
	result, err := s.provider.CreateSubscription(ctx, customerID, plan, paymentMethodID)
	if err != nil {
		return nil, fmt.Errorf("creating payment subscription: %w", err)
	}

	now := time.Now().UTC()
	sub := &types.Subscription{
		TenantID:              tenant.ID,
		Plan:                  plan,
		Status:                result.Status,
		StartDate:             now,
		EndDate:               now.AddDate(0, 1, 0),
		Features:              datatypes.NewJSONType(features),
		PaymentProvider:       s.provider.Name(),
		PaymentCustomerID:     customerID,
		PaymentSubscriptionID: result.SubscriptionID,
	}
	created, err := s.subscriptionRepo.Create(ctx, nil, sub)
	if err != nil {
		return nil, fmt.Errorf("creating subscription: %w", err)
	}

	s.sendMail(ctx, tenant.ContactEmail, tenant.Name,
		"Welcome to PlateWise",
		fmt.Sprintf("Your %s plan is now active. Thanks for joining, %s!", plan, tenant.Name))
	return created, nil
}

func (s *subscriptionService) GetForTenant(ctx context.Context) (*types.Subscription, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.subscriptionRepo.GetByTenant(ctx, nil, rd.TenantID)
}

func (s *subscriptionService) UpdatePlan(ctx context.Context, plan string) (*types.Subscription, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	features, ok := types.PlanFeaturesFor(plan)
	if !ok {
		return nil, fmt.Errorf("unknown plan %q: %w", plan, apperr.ErrInvalidArgument)
	}

	sub, err := s.subscriptionRepo.GetByTenant(ctx, nil, rd.TenantID)
	if err != nil {
		return nil, err
	}
	if sub.Status == types.SubscriptionStatusCanceled {
		return nil, fmt.Errorf("subscription is canceled: %w", apperr.ErrForbidden)
	}
	if sub.PaymentSubscriptionID != "" {
		if err := s.provider.UpdateSubscription(ctx, sub.PaymentSubscriptionID, plan); err != nil {
			return nil, fmt.Errorf("updating payment subscription: %w", err)
		}
	}
	updates := map[string]any{
		"plan":     plan,
		"features": datatypes.NewJSONType(features),
	}
	if err := s.subscriptionRepo.Update(ctx, nil, rd.TenantID, updates); err != nil {
		return nil, err
	}

	if tenant, tErr := s.tenantRepo.GetByID(ctx, nil, rd.TenantID); tErr == nil {
		s.sendMail(ctx, tenant.ContactEmail, tenant.Name,
			"Your PlateWise plan changed",
			fmt.Sprintf("Your subscription is now on the %s plan.", plan))
	}
	return s.subscriptionRepo.GetByTenant(ctx, nil, rd.TenantID)
}

func (s *subscriptionService) Cancel(ctx context.Context) error {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return err
	}
	sub, err := s.subscriptionRepo.GetByTenant(ctx, nil, rd.TenantID)
	if err != nil {
		return err
	}
	if sub.Status == types.SubscriptionStatusCanceled {
		return nil
	}
	if sub.PaymentSubscriptionID != "" {
		if err := s.provider.CancelSubscription(ctx, sub.PaymentSubscriptionID); err != nil {
			return fmt.Errorf("canceling payment subscription: %w", err)
		}
	}
	if err := s.subscriptionRepo.Cancel(ctx, nil, rd.TenantID); err != nil {
		return err
	}
	if tenant, tErr := s.tenantRepo.GetByID(ctx, nil, rd.TenantID); tErr == nil {
		s.sendMail(ctx, tenant.ContactEmail, tenant.Name,
			"Your PlateWise subscription was canceled",
			"Your subscription has been canceled. Your data stays available on the basic read-only surface.")
	}
	return nil
}

func (s *subscriptionService) CheckLimits(ctx context.Context, tenantID uuid.UUID, featureKey string, currentCount int64) (bool, error) {
	sub, err := s.subscriptionRepo.GetByTenant(ctx, nil, tenantID)
	if err != nil {
		return false, err
	}
	if !sub.Usable() {
		return false, fmt.Errorf("subscription status %q does not admit gated operations: %w", sub.Status, apperr.ErrForbidden)
	}
	features := sub.Features.Data()
	if flag, ok := features.FlagFor(featureKey); ok {
		return flag, nil
	}
	if limit, ok := features.QuotaFor(featureKey); ok {
		return currentCount < int64(limit), nil
	}
	return false, fmt.Errorf("unknown feature key %q: %w", featureKey, apperr.ErrInvalidArgument)
}

func (s *subscriptionService) HandlePaymentEvent(ctx context.Context, event PaymentEvent) error {
	if event.TenantID == uuid.Nil {
		return fmt.Errorf("payment event has no tenant: %w", apperr.ErrInvalidArgument)
	}
	if _, err := s.subscriptionRepo.GetByTenant(ctx, nil, event.TenantID); err != nil {
		return err
	}

	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}

	switch event.Type {
	case PaymentEventPaymentSucceeded:
		next := occurred.AddDate(0, 1, 0)
		return s.subscriptionRepo.Update(ctx, nil, event.TenantID, map[string]any{
			"status":            types.SubscriptionStatusActive,
			"last_payment_date": occurred,
			"next_payment_date": next,
			"end_date":          next,
		})
	case PaymentEventPaymentFailed:
		s.log.Warn("payment failed for tenant", "tenant_id", event.TenantID)
		return s.subscriptionRepo.Update(ctx, nil, event.TenantID, map[string]any{
			"status": types.SubscriptionStatusPastDue,
		})
	case PaymentEventSubscriptionDeleted:
		return s.subscriptionRepo.Cancel(ctx, nil, event.TenantID)
	default:
		s.log.Debug("ignoring unhandled payment event", "type", event.Type)
		return nil
	}
}

// sendMail delivers best-effort; a mail failure never rolls back the
// subscription change it announces.
func (s *subscriptionService) sendMail(ctx context.Context, to, name, subject, body string) {
	if s.mailer == nil || to == "" {
		return
	}
	err := s.mailer.Send(ctx, email.SendEmailRequest{
		To:      []email.EmailAddress{{Email: to, Name: name}},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		s.log.Warn("failed to send subscription email", "to", to, "error", err)
	}
}
