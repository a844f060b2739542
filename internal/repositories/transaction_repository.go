package repositories

import (
	"errors"
	"fmt"

	"smartwallet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(txn *models.Transaction) error {
	if err := r.db.Create(txn).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.First(&txn, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &txn, nil
}

func (r *transactionRepository) GetAllByOwnerID(ownerID uuid.UUID) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txns, nil
}

func (r *transactionRepository) GetLastByOwnerID(ownerID uuid.UUID, limit int) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get last transactions: %w", err)
	}
	return txns, nil
}
