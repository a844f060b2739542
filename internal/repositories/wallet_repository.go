package repositories

import (
	"errors"

	"smartwallet/internal/models"

	"github.com/google/uuid"
)

var (
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrUserNotFound         = errors.New("user not found")
)

// WalletRepository defines the interface for wallet-related database operations.
type WalletRepository interface {
	Create(wallet *models.Wallet) error
	GetByID(id uuid.UUID) (*models.Wallet, error)
	// GetByIDForUpdate locks the wallet row for the duration of the enclosing
	// transaction so concurrent balance checks serialize per wallet.
	GetByIDForUpdate(id uuid.UUID) (*models.Wallet, error)
	GetAllByOwnerID(ownerID uuid.UUID) ([]models.Wallet, error)
	CountByOwnerID(ownerID uuid.UUID) (int64, error)
	// GetActiveByOwnerUsername resolves the first active wallet owned by the
	// named user.
	GetActiveByOwnerUsername(username string) (*models.Wallet, error)
	Update(wallet *models.Wallet) error

	// ExecuteInTransaction runs fn against transaction-scoped wallet and
	// ledger repositories. Either everything inside commits or nothing does.
	ExecuteInTransaction(fn func(WalletRepository, TransactionRepository) error) error
}

// TransactionRepository defines the interface for ledger persistence.
type TransactionRepository interface {
	Create(txn *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetAllByOwnerID(ownerID uuid.UUID) ([]models.Transaction, error)
	GetLastByOwnerID(ownerID uuid.UUID, limit int) ([]models.Transaction, error)
}

// SubscriptionRepository defines the interface for subscription persistence.
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	Update(sub *models.Subscription) error
	GetActiveByOwnerID(ownerID uuid.UUID) (*models.Subscription, error)
	GetAllByOwnerID(ownerID uuid.UUID) ([]models.Subscription, error)

	ExecuteInTransaction(fn func(SubscriptionRepository) error) error
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	// GetByIDWithRelations preloads the user's wallets and subscriptions.
	GetByIDWithRelations(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
}
