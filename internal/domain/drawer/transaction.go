package drawer

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

// CashTransaction is one cash movement inside a session. Records are
// append-only; they are never updated or deleted, and the amount is always
// stored positive with the sign implied by the type.
type CashTransaction struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key"`
	SessionID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	Type          TransactionType   `gorm:"type:varchar(20);not null;column:transaction_type"`
	Amount        valueobject.Money `gorm:"type:bigint;not null"`
	PaymentMethod string            `gorm:"type:varchar(30);not null;default:'cash'"`
	Description   string            `gorm:"type:varchar(500)"`
	Notes         string            `gorm:"type:text"`
	ReferenceType string            `gorm:"type:varchar(50)"` // e.g. "order", "refund"
	ReferenceID   *uuid.UUID        `gorm:"type:uuid"`
	CreatedBy     uuid.UUID         `gorm:"type:uuid;not null"`
	CreatedAt     time.Time         `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CashTransaction) TableName() string {
	return "cash_transactions"
}

// NewCashTransaction creates a new cash movement record
func NewCashTransaction(
	sessionID uuid.UUID,
	txType TransactionType,
	amount valueobject.Money,
	paymentMethod string,
	description string,
	notes string,
	createdBy uuid.UUID,
	createdAt time.Time,
) (*CashTransaction, error) {
	if sessionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SESSION", "Session ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Transaction type is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creating user ID is required")
	}
	if paymentMethod == "" {
		paymentMethod = PaymentMethodCash
	}

	return &CashTransaction{
		ID:            uuid.New(),
		SessionID:     sessionID,
		Type:          txType,
		Amount:        amount,
		PaymentMethod: paymentMethod,
		Description:   description,
		Notes:         notes,
		CreatedBy:     createdBy,
		CreatedAt:     createdAt,
	}, nil
}

// WithReference attaches the originating POS document to the transaction
func (t *CashTransaction) WithReference(referenceType string, referenceID uuid.UUID) *CashTransaction {
	t.ReferenceType = referenceType
	t.ReferenceID = &referenceID
	return t
}

// SignedAmount returns the amount with the sign implied by the type:
// positive for cash-in, negative for cash-out.
func (t *CashTransaction) SignedAmount() valueobject.Money {
	if t.Type.IsCashIn() {
		return t.Amount
	}
	return t.Amount.Negate()
}
