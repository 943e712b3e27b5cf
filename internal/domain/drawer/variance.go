package drawer

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

// CashVariance records a discrepancy between counted and expected cash at
// session close. Variances are written in the same transaction as the close
// and are append-only.
type CashVariance struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key"`
	SessionID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Type        VarianceType      `gorm:"type:varchar(20);not null;column:variance_type"`
	Amount      valueobject.Money `gorm:"type:bigint;not null"` // absolute value of the difference
	Description string            `gorm:"type:varchar(500)"`
	CreatedBy   uuid.UUID         `gorm:"type:uuid;not null"`
	CreatedAt   time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CashVariance) TableName() string {
	return "cash_variances"
}

// NewCashVariance creates a variance record from a non-zero close difference
func NewCashVariance(
	sessionID uuid.UUID,
	difference valueobject.Money,
	description string,
	createdBy uuid.UUID,
	createdAt time.Time,
) (*CashVariance, error) {
	if sessionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SESSION", "Session ID cannot be empty")
	}
	if difference.IsZero() {
		return nil, shared.NewDomainError("INVALID_VARIANCE", "Variance amount cannot be zero")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creating user ID is required")
	}

	return &CashVariance{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Type:        VarianceTypeFor(difference),
		Amount:      difference.Abs(),
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   createdAt,
	}, nil
}
