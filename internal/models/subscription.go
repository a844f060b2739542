package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Subscription statuses
const (
	SubscriptionStatusActive    = "ACTIVE"
	SubscriptionStatusCompleted = "COMPLETED"
)

// Subscription periods
const (
	SubscriptionPeriodMonthly = "MONTHLY"
	SubscriptionPeriodYearly  = "YEARLY"
)

// Subscription types
const (
	SubscriptionTypeDefault  = "DEFAULT"
	SubscriptionTypePremium  = "PREMIUM"
	SubscriptionTypeUltimate = "ULTIMATE"
)

// Subscription is a time-boxed plan entitlement. Exactly one subscription per
// owner is ACTIVE at any time; COMPLETED is terminal.
type Subscription struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_subscriptions_status_owner,priority:2"`
	Owner          *User           `gorm:"foreignKey:OwnerID"`
	Status         string          `gorm:"not null;index:idx_subscriptions_status_owner,priority:1"`
	Period         string          `gorm:"not null"`
	Type           string          `gorm:"not null"`
	Price          decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	RenewalAllowed bool
	CreatedAt      time.Time
	ExpiryOn       time.Time
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
