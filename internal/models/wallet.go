package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet statuses
const (
	WalletStatusActive   = "ACTIVE"
	WalletStatusInactive = "INACTIVE"
)

type Wallet struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Owner     *User           `gorm:"foreignKey:OwnerID"`
	Balance   decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Currency  string          `gorm:"default:'EUR'"`
	Status    string          `gorm:"not null;default:'ACTIVE'"`
	Nickname  string
	Main      bool `gorm:"default:false"` // at most one main wallet per owner
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

func (w *Wallet) IsActive() bool {
	return w.Status == WalletStatusActive
}
