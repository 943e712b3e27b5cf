package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/drawer"
	"gorm.io/gorm"
)

// GormCashVarianceRepository implements drawer.CashVarianceRepository using GORM
type GormCashVarianceRepository struct {
	db *gorm.DB
}

// NewGormCashVarianceRepository creates a new GormCashVarianceRepository
func NewGormCashVarianceRepository(db *gorm.DB) *GormCashVarianceRepository {
	return &GormCashVarianceRepository{db: db}
}

// Create records a reconciliation variance
func (r *GormCashVarianceRepository) Create(ctx context.Context, v *drawer.CashVariance) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// FindBySession returns the variances recorded for a session
func (r *GormCashVarianceRepository) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]drawer.CashVariance, error) {
	var variances []drawer.CashVariance
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&variances).Error; err != nil {
		return nil, err
	}
	return variances, nil
}

var _ drawer.CashVarianceRepository = (*GormCashVarianceRepository)(nil)
