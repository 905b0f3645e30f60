package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Subscription statuses mirror the payment provider's lifecycle.
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusTrialing = "trialing"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

type Subscription struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:tenant_id" json:"tenant_id"`

	Plan   string `gorm:"not null;default:'basic';column:plan" json:"plan"`
	Status string `gorm:"not null;default:'active';column:status" json:"status"`

	StartDate   time.Time  `gorm:"not null;column:start_date" json:"start_date"`
	EndDate     time.Time  `gorm:"not null;column:end_date" json:"end_date"`
	TrialEndsAt *time.Time `gorm:"column:trial_ends_at" json:"trial_ends_at,omitempty"`
	CanceledAt  *time.Time `gorm:"column:canceled_at" json:"canceled_at,omitempty"`

	Features datatypes.JSONType[PlanFeatures] `gorm:"column:features" json:"features"`

	PaymentProvider       string     `gorm:"column:payment_provider" json:"payment_provider,omitempty"`
	PaymentCustomerID     string     `gorm:"column:payment_customer_id" json:"-"`
	PaymentSubscriptionID string     `gorm:"column:payment_subscription_id" json:"-"`
	LastPaymentDate       *time.Time `gorm:"column:last_payment_date" json:"last_payment_date,omitempty"`
	NextPaymentDate       *time.Time `gorm:"column:next_payment_date" json:"next_payment_date,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscription" }

// Usable reports whether the subscription currently admits gated operations.
func (s *Subscription) Usable() bool {
	return s.Status == SubscriptionStatusActive || s.Status == SubscriptionStatusTrialing
}
