// Package ledger records every attempted money movement, successful or
// failed, as an immutable transaction row. It never mutates wallets.
package ledger

import (
	"context"
	"time"

	"smartwallet/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store is the persistence contract the recorder writes through. A
// transaction-scoped repository satisfies it, so records land in the same
// database transaction as the wallet mutation they describe.
type Store interface {
	Create(txn *models.Transaction) error
}

// NewTransaction holds the fields for a transaction recorded in one step,
// used by top-up and the missing-receiver transfer path.
type NewTransaction struct {
	OwnerID       uuid.UUID
	Sender        string
	Receiver      string
	Amount        decimal.Decimal
	BalanceLeft   decimal.Decimal
	Currency      string
	Type          string
	Status        string
	Description   string
	FailureReason *string
}

// Recorder persists transaction records exactly once per physical event.
type Recorder interface {
	// Upsert persists a fully built transaction value as-is.
	Upsert(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	// CreateNew builds and persists a transaction in one call.
	CreateNew(ctx context.Context, p NewTransaction) (*models.Transaction, error)
}

type recorder struct {
	store Store
}

func NewRecorder(store Store) Recorder {
	return &recorder{store: store}
}

func (r *recorder) Upsert(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	if err := r.store.Create(txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (r *recorder) CreateNew(ctx context.Context, p NewTransaction) (*models.Transaction, error) {
	txn := &models.Transaction{
		OwnerID:       p.OwnerID,
		Sender:        p.Sender,
		Receiver:      p.Receiver,
		Amount:        p.Amount,
		BalanceLeft:   p.BalanceLeft,
		Currency:      p.Currency,
		Type:          p.Type,
		Status:        p.Status,
		Description:   p.Description,
		FailureReason: p.FailureReason,
		CreatedAt:     time.Now(),
	}
	return r.Upsert(ctx, txn)
}
