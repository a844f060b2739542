// Package subscription implements the plan upgrade workflow: price the
// requested plan, charge the wallet, and only on success rotate the active
// subscription.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartwallet/internal/models"
	"smartwallet/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	upgradeEmailSubject     = "Successful plan upgrade"
	upgradeEmailBodyFormat  = "You have successfully purchased %s plan with period %s for %.2f Euro, your new subscription will expiry %s."
	upgradeChargeDescFormat = "Upgrade request for %s %s"
)

// UpgradeRequest selects the billing period and the wallet to charge.
type UpgradeRequest struct {
	Period   string
	WalletID uuid.UUID
}

// WalletCharger is the slice of the wallet engine the workflow needs.
type WalletCharger interface {
	Charge(ctx context.Context, user *models.User, walletID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error)
}

// Notifier sends the best-effort upgrade confirmation email. Implementations
// must swallow their own delivery failures.
type Notifier interface {
	SendEmail(ctx context.Context, userID uuid.UUID, subject, body string)
}

type Service interface {
	CreateDefault(ctx context.Context, user *models.User) (*models.Subscription, error)
	Upgrade(ctx context.Context, user *models.User, req UpgradeRequest, subscriptionType string) (*models.Transaction, error)
	GetAllByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]models.Subscription, error)
}

type service struct {
	repo     repositories.SubscriptionRepository
	wallets  WalletCharger
	notifier Notifier
}

func NewService(repo repositories.SubscriptionRepository, wallets WalletCharger, notifier Notifier) Service {
	if repo == nil {
		panic("subscription repository is required")
	}
	if wallets == nil {
		panic("wallet charger is required")
	}
	return &service{
		repo:     repo,
		wallets:  wallets,
		notifier: notifier,
	}
}

// CreateDefault provisions the free DEFAULT plan granted at registration.
func (s *service) CreateDefault(ctx context.Context, user *models.User) (*models.Subscription, error) {
	now := time.Now()
	sub := &models.Subscription{
		OwnerID:        user.ID,
		Status:         models.SubscriptionStatusActive,
		Period:         models.SubscriptionPeriodMonthly,
		Type:           models.SubscriptionTypeDefault,
		Price:          decimal.Zero,
		RenewalAllowed: true,
		CreatedAt:      now,
		ExpiryOn:       now.AddDate(0, 1, 0),
	}
	if err := s.repo.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Upgrade charges the wallet for the requested plan and, only if the charge
// succeeded, completes the current subscription and activates the new one.
// A failed charge is returned as-is with the subscription state untouched.
func (s *service) Upgrade(ctx context.Context, user *models.User, req UpgradeRequest, subscriptionType string) (*models.Transaction, error) {
	current, err := s.repo.GetActiveByOwnerID(user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, fmt.Errorf("%w for user %s", ErrNoActiveSubscription, user.ID)
		}
		return nil, err
	}

	price, err := UpgradePrice(subscriptionType, req.Period)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf(upgradeChargeDescFormat, periodDisplayName(req.Period), subscriptionType)
	chargeResult, err := s.wallets.Charge(ctx, user, req.WalletID, price, description)
	if err != nil {
		return nil, err
	}
	if chargeResult.Failed() {
		return chargeResult, nil
	}

	now := time.Now()
	var expiryOn time.Time
	if req.Period == models.SubscriptionPeriodMonthly {
		expiryOn = truncateToDay(now.AddDate(0, 1, 0))
	} else {
		expiryOn = truncateToDay(now.AddDate(1, 0, 0))
	}

	next := &models.Subscription{
		OwnerID:        user.ID,
		Status:         models.SubscriptionStatusActive,
		Period:         req.Period,
		Type:           subscriptionType,
		Price:          price,
		RenewalAllowed: req.Period == models.SubscriptionPeriodMonthly,
		CreatedAt:      now,
		ExpiryOn:       expiryOn,
	}

	current.Status = models.SubscriptionStatusCompleted
	current.ExpiryOn = now

	err = s.repo.ExecuteInTransaction(func(tx repositories.SubscriptionRepository) error {
		if err := tx.Update(current); err != nil {
			return err
		}
		return tx.Create(next)
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		body := fmt.Sprintf(upgradeEmailBodyFormat,
			next.Type, next.Period, next.Price.InexactFloat64(), expiryOn.Format("2006-01-02"))
		s.notifier.SendEmail(ctx, user.ID, upgradeEmailSubject, body)
	}

	return chargeResult, nil
}

func (s *service) GetAllByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]models.Subscription, error) {
	return s.repo.GetAllByOwnerID(ownerID)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func periodDisplayName(period string) string {
	switch period {
	case models.SubscriptionPeriodMonthly:
		return "Monthly"
	case models.SubscriptionPeriodYearly:
		return "Yearly"
	}
	return period
}
