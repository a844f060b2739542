package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types
const (
	TransactionTypeWithdrawal = "WITHDRAWAL"
	TransactionTypeDeposit    = "DEPOSIT"
)

// Transaction statuses
const (
	TransactionStatusSucceeded = "SUCCEEDED"
	TransactionStatusFailed    = "FAILED"
)

// Transaction is an immutable ledger record of one attempted balance change,
// successful or failed. Sender and Receiver hold either a wallet id or the
// platform identifier.
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Owner         *User           `gorm:"foreignKey:OwnerID"`
	Sender        string          `gorm:"not null"`
	Receiver      string          `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	BalanceLeft   decimal.Decimal `gorm:"type:numeric(19,2)"`
	Currency      string          `gorm:"default:'EUR'"`
	Type          string          `gorm:"not null"`
	Status        string          `gorm:"not null"`
	Description   string
	FailureReason *string
	CreatedAt     time.Time
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Transaction) Failed() bool {
	return t.Status == TransactionStatusFailed
}
