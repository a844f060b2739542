package wallet

import (
	"context"

	"smartwallet/internal/events"
	"smartwallet/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRequest asks to move funds from a wallet to another user's first
// active wallet.
type TransferRequest struct {
	FromWalletID      uuid.UUID
	RecipientUsername string
	Amount            decimal.Decimal
}

// Cache holds wallet lookups between balance mutations.
type Cache interface {
	GetWallet(ctx context.Context, id uuid.UUID) (*models.Wallet, error)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, id uuid.UUID) error
}

// EventPublisher fans out domain events after a charge commits.
type EventPublisher interface {
	Publish(event events.SuccessfulCharge)
}

// outcome is the result of classifying a money movement against business
// rules: either a success or a failure with a reason. balanceLeft is the
// wallet balance at the time the outcome is final, so it holds the
// pre-mutation value on failure and the post-mutation value on success.
type outcome struct {
	succeeded   bool
	reason      string
	balanceLeft decimal.Decimal
}

func success(balanceLeft decimal.Decimal) outcome {
	return outcome{succeeded: true, balanceLeft: balanceLeft}
}

func failure(reason string, balanceLeft decimal.Decimal) outcome {
	return outcome{reason: reason, balanceLeft: balanceLeft}
}

// apply maps the outcome onto a transaction record in a single step.
func (o outcome) apply(txn *models.Transaction) {
	txn.BalanceLeft = o.balanceLeft
	if o.succeeded {
		txn.Status = models.TransactionStatusSucceeded
		return
	}
	reason := o.reason
	txn.Status = models.TransactionStatusFailed
	txn.FailureReason = &reason
}
