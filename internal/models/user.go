package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	UserRoleUser  = "USER"
	UserRoleAdmin = "ADMIN"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username       string    `gorm:"uniqueIndex;not null"`
	Password       string    `gorm:"not null"`
	Role           string    `gorm:"default:'USER'"`
	Country        string
	FirstName      string
	LastName       string
	Email          string
	ProfilePicture string
	Active         bool           `gorm:"default:true"`
	Wallets        []Wallet       `gorm:"foreignKey:OwnerID"`
	Subscriptions  []Subscription `gorm:"foreignKey:OwnerID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
