package billing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

// Subscription mirrors the Stripe subscription for a user. The free tier has
// no row here.
type Subscription struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	Tier                 string `gorm:"column:tier;not null" json:"tier"`
	Status               string `gorm:"column:status;not null;index" json:"status"`
	StripeSubscriptionID string `gorm:"column:stripe_subscription_id;uniqueIndex" json:"-"`
	StripePriceID        string `gorm:"column:stripe_price_id" json:"-"`

	CurrentPeriodEnd  time.Time `gorm:"column:current_period_end" json:"current_period_end"`
	CancelAtPeriodEnd bool      `gorm:"column:cancel_at_period_end;not null;default:false" json:"cancel_at_period_end"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Subscription) TableName() string { return "subscription" }
