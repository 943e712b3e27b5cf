package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/drawer"
	"gorm.io/gorm"
)

// GormCashTransactionRepository implements drawer.CashTransactionRepository using GORM
type GormCashTransactionRepository struct {
	db *gorm.DB
}

// NewGormCashTransactionRepository creates a new GormCashTransactionRepository
func NewGormCashTransactionRepository(db *gorm.DB) *GormCashTransactionRepository {
	return &GormCashTransactionRepository{db: db}
}

// Create appends a movement to the session ledger
func (r *GormCashTransactionRepository) Create(ctx context.Context, tx *drawer.CashTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindBySession returns the ledger for a session in creation order
func (r *GormCashTransactionRepository) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]drawer.CashTransaction, error) {
	var transactions []drawer.CashTransaction
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

var _ drawer.CashTransactionRepository = (*GormCashTransactionRepository)(nil)
