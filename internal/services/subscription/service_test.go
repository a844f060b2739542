package subscription

import (
	"context"
	"testing"
	"time"

	"smartwallet/internal/models"
	"smartwallet/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriptionRepo struct {
	subs map[uuid.UUID]*models.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[uuid.UUID]*models.Subscription)}
}

func (f *fakeSubscriptionRepo) Create(sub *models.Subscription) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	cp := *sub
	f.subs[sub.ID] = &cp
	return nil
}

func (f *fakeSubscriptionRepo) Update(sub *models.Subscription) error {
	if _, ok := f.subs[sub.ID]; !ok {
		return repositories.ErrSubscriptionNotFound
	}
	cp := *sub
	f.subs[sub.ID] = &cp
	return nil
}

func (f *fakeSubscriptionRepo) GetActiveByOwnerID(ownerID uuid.UUID) (*models.Subscription, error) {
	for _, sub := range f.subs {
		if sub.OwnerID == ownerID && sub.Status == models.SubscriptionStatusActive {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, repositories.ErrSubscriptionNotFound
}

func (f *fakeSubscriptionRepo) GetAllByOwnerID(ownerID uuid.UUID) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, sub := range f.subs {
		if sub.OwnerID == ownerID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) ExecuteInTransaction(fn func(repositories.SubscriptionRepository) error) error {
	return fn(f)
}

// fakeCharger returns a canned transaction per call.
type fakeCharger struct {
	result       *models.Transaction
	err          error
	descriptions []string
	amounts      []decimal.Decimal
}

func (f *fakeCharger) Charge(ctx context.Context, user *models.User, walletID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error) {
	f.descriptions = append(f.descriptions, description)
	f.amounts = append(f.amounts, amount)
	return f.result, f.err
}

type fakeNotifier struct {
	subjects []string
	bodies   []string
}

func (f *fakeNotifier) SendEmail(ctx context.Context, userID uuid.UUID, subject, body string) {
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
}

func seedActiveSub(repo *fakeSubscriptionRepo, ownerID uuid.UUID, planType string) *models.Subscription {
	sub := &models.Subscription{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Status:   models.SubscriptionStatusActive,
		Period:   models.SubscriptionPeriodMonthly,
		Type:     planType,
		ExpiryOn: time.Now().AddDate(0, 1, 0),
	}
	repo.subs[sub.ID] = sub
	return sub
}

func succeededTxn() *models.Transaction {
	return &models.Transaction{
		ID:     uuid.New(),
		Status: models.TransactionStatusSucceeded,
	}
}

func failedTxn(reason string) *models.Transaction {
	return &models.Transaction{
		ID:            uuid.New(),
		Status:        models.TransactionStatusFailed,
		FailureReason: &reason,
	}
}

func TestUpgradePrice(t *testing.T) {
	tests := []struct {
		planType string
		period   string
		want     string
		wantErr  bool
	}{
		{models.SubscriptionTypeDefault, models.SubscriptionPeriodMonthly, "0", false},
		{models.SubscriptionTypePremium, models.SubscriptionPeriodMonthly, "19.99", false},
		{models.SubscriptionTypePremium, models.SubscriptionPeriodYearly, "199.99", false},
		{models.SubscriptionTypeUltimate, models.SubscriptionPeriodMonthly, "49.99", false},
		{models.SubscriptionTypeUltimate, models.SubscriptionPeriodYearly, "499.99", false},
		{"GOLD", models.SubscriptionPeriodMonthly, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.planType+"/"+tt.period, func(t *testing.T) {
			price, err := UpgradePrice(tt.planType, tt.period)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPricingNotFound)
				return
			}
			require.NoError(t, err)
			assert.True(t, price.Equal(decimal.RequireFromString(tt.want)))
		})
	}
}

func TestCreateDefault(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	svc := NewService(repo, &fakeCharger{}, nil)
	user := &models.User{ID: uuid.New()}

	sub, err := svc.CreateDefault(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionTypeDefault, sub.Type)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, models.SubscriptionPeriodMonthly, sub.Period)
	assert.True(t, sub.Price.IsZero())
	assert.True(t, sub.RenewalAllowed)
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), sub.ExpiryOn, time.Minute)
}

func TestUpgrade(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Username: "alice"}
	walletID := uuid.New()

	t.Run("successful upgrade rotates the subscription", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		current := seedActiveSub(repo, user.ID, models.SubscriptionTypeDefault)
		charger := &fakeCharger{result: succeededTxn()}
		notifier := &fakeNotifier{}
		svc := NewService(repo, charger, notifier)

		txn, err := svc.Upgrade(ctx, user, UpgradeRequest{
			Period:   models.SubscriptionPeriodMonthly,
			WalletID: walletID,
		}, models.SubscriptionTypePremium)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusSucceeded, txn.Status)

		require.Len(t, charger.amounts, 1)
		assert.True(t, charger.amounts[0].Equal(decimal.RequireFromString("19.99")))
		assert.Equal(t, "Upgrade request for Monthly PREMIUM", charger.descriptions[0])

		completed := repo.subs[current.ID]
		assert.Equal(t, models.SubscriptionStatusCompleted, completed.Status)
		assert.WithinDuration(t, time.Now(), completed.ExpiryOn, time.Minute)

		next, err := repo.GetActiveByOwnerID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, models.SubscriptionTypePremium, next.Type)
		assert.Equal(t, models.SubscriptionPeriodMonthly, next.Period)
		assert.True(t, next.RenewalAllowed)

		wantExpiry := time.Now().AddDate(0, 1, 0)
		assert.Equal(t, 0, next.ExpiryOn.Hour())
		assert.Equal(t, 0, next.ExpiryOn.Minute())
		assert.Equal(t, wantExpiry.Day(), next.ExpiryOn.Day())

		require.Len(t, notifier.subjects, 1)
		assert.Equal(t, "Successful plan upgrade", notifier.subjects[0])
		assert.Contains(t, notifier.bodies[0], "PREMIUM plan with period MONTHLY for 19.99 Euro")
	})

	t.Run("yearly upgrade disallows renewal", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		seedActiveSub(repo, user.ID, models.SubscriptionTypeDefault)
		charger := &fakeCharger{result: succeededTxn()}
		svc := NewService(repo, charger, nil)

		_, err := svc.Upgrade(ctx, user, UpgradeRequest{
			Period:   models.SubscriptionPeriodYearly,
			WalletID: walletID,
		}, models.SubscriptionTypeUltimate)
		require.NoError(t, err)

		assert.True(t, charger.amounts[0].Equal(decimal.RequireFromString("499.99")))

		next, err := repo.GetActiveByOwnerID(user.ID)
		require.NoError(t, err)
		assert.False(t, next.RenewalAllowed)
		assert.Equal(t, time.Now().AddDate(1, 0, 0).Year(), next.ExpiryOn.Year())
	})

	t.Run("declined charge leaves the subscription untouched", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		current := seedActiveSub(repo, user.ID, models.SubscriptionTypeDefault)
		charger := &fakeCharger{result: failedTxn("Insufficient funds")}
		notifier := &fakeNotifier{}
		svc := NewService(repo, charger, notifier)

		txn, err := svc.Upgrade(ctx, user, UpgradeRequest{
			Period:   models.SubscriptionPeriodMonthly,
			WalletID: walletID,
		}, models.SubscriptionTypePremium)
		require.NoError(t, err)

		assert.Equal(t, models.TransactionStatusFailed, txn.Status)
		assert.Equal(t, models.SubscriptionStatusActive, repo.subs[current.ID].Status)
		assert.Len(t, repo.subs, 1)
		assert.Empty(t, notifier.subjects)
	})

	t.Run("missing active subscription is an integrity error", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		svc := NewService(repo, &fakeCharger{result: succeededTxn()}, nil)

		_, err := svc.Upgrade(ctx, user, UpgradeRequest{
			Period:   models.SubscriptionPeriodMonthly,
			WalletID: walletID,
		}, models.SubscriptionTypePremium)
		assert.ErrorIs(t, err, ErrNoActiveSubscription)
	})

	t.Run("charge error propagates", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		seedActiveSub(repo, user.ID, models.SubscriptionTypeDefault)
		svc := NewService(repo, &fakeCharger{err: repositories.ErrWalletNotFound}, nil)

		_, err := svc.Upgrade(ctx, user, UpgradeRequest{
			Period:   models.SubscriptionPeriodMonthly,
			WalletID: walletID,
		}, models.SubscriptionTypePremium)
		assert.ErrorIs(t, err, repositories.ErrWalletNotFound)
	})
}
