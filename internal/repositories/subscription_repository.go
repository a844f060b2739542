package repositories

import (
	"errors"
	"fmt"

	"smartwallet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(sub *models.Subscription) error {
	if err := r.db.Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) Update(sub *models.Subscription) error {
	if err := r.db.Save(sub).Error; err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepository) GetActiveByOwnerID(ownerID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("status = ? AND owner_id = ?", models.SubscriptionStatusActive, ownerID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetAllByOwnerID(ownerID uuid.UUID) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}
	return subs, nil
}

func (r *subscriptionRepository) ExecuteInTransaction(fn func(SubscriptionRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&subscriptionRepository{db: tx})
	})
}
