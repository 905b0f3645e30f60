package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	types "github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

// Provider is the capability boundary to the payment processor. The
// subscription service only needs customer and subscription handles plus the
// resulting status; everything else (cards, invoices, dunning) stays on the
// provider's side and arrives back as webhook events.
type Provider interface {
	CreateCustomer(ctx context.Context, tenantID uuid.UUID, email, name string) (string, error)
	CreateSubscription(ctx context.Context, customerID, plan string, paymentMethodID string) (*SubscriptionResult, error)
	UpdateSubscription(ctx context.Context, subscriptionID, plan string) error
	CancelSubscription(ctx context.Context, subscriptionID string) error
	Name() string
}

type SubscriptionResult struct {
	SubscriptionID string
	Status         string
}

// NewOfflineProvider returns a provider that issues deterministic handles and
// activates everything immediately. It stands in until a real processor is
// connected; the paid plan still resolves features from the catalog, and
// webhook-driven status transitions work the same way against it.
func NewOfflineProvider(log *logger.Logger) Provider {
	return &offlineProvider{log: log.With("client", "OfflinePaymentProvider")}
}

type offlineProvider struct {
	log *logger.Logger
}

func (p *offlineProvider) Name() string { return "offline" }

func (p *offlineProvider) CreateCustomer(_ context.Context, tenantID uuid.UUID, email, _ string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("customer email required")
	}
	customerID := "cus_" + tenantID.String()
	p.log.Debug("Created offline payment customer", "customer_id", customerID)
	return customerID, nil
}

func (p *offlineProvider) CreateSubscription(_ context.Context, customerID, plan string, _ string) (*SubscriptionResult, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, fmt.Errorf("customer id required")
	}
	subscriptionID := "sub_" + uuid.New().String()
	p.log.Debug("Created offline payment subscription", "subscription_id", subscriptionID, "plan", plan)
	return &SubscriptionResult{
		SubscriptionID: subscriptionID,
		Status:         types.SubscriptionStatusActive,
	}, nil
}

func (p *offlineProvider) UpdateSubscription(_ context.Context, subscriptionID, plan string) error {
	p.log.Debug("Updated offline payment subscription", "subscription_id", subscriptionID, "plan", plan)
	return nil
}

func (p *offlineProvider) CancelSubscription(_ context.Context, subscriptionID string) error {
	p.log.Debug("Canceled offline payment subscription", "subscription_id", subscriptionID)
	return nil
}
