package wallet

import (
	"context"

	"smartwallet/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is the wallet engine. Business failures (inactive wallet,
// insufficient funds, missing receiver) come back as FAILED transactions,
// not errors; errors are reserved for not-found and infrastructure problems.
type Service interface {
	// Money movement
	Charge(ctx context.Context, user *models.User, walletID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error)
	TopUp(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (*models.Transaction, error)
	Transfer(ctx context.Context, req TransferRequest) (*models.Transaction, error)

	// Provisioning and management
	CreateDefaultWallet(ctx context.Context, user *models.User) (*models.Wallet, error)
	UnlockNewWallet(ctx context.Context, user *models.User) (*models.Wallet, error)
	SwitchStatus(ctx context.Context, ownerID, walletID uuid.UUID) (*models.Wallet, error)
	SetNickname(ctx context.Context, ownerID, walletID uuid.UUID, nickname string) (*models.Wallet, error)

	// Lookups
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wallet, error)
	GetAllByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]models.Wallet, error)
}
