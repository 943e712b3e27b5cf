package drawer

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

// DrawerCreatedEvent is raised when a new drawer is registered
type DrawerCreatedEvent struct {
	shared.BaseDomainEvent
	DrawerID      uuid.UUID         `json:"drawer_id"`
	Code          string            `json:"code"`
	Name          string            `json:"name"`
	StartingFloat valueobject.Money `json:"starting_float"`
}

// EventType returns the event type name
func (e *DrawerCreatedEvent) EventType() string {
	return "DrawerCreated"
}

// NewDrawerCreatedEvent creates a new DrawerCreatedEvent
func NewDrawerCreatedEvent(d *Drawer) *DrawerCreatedEvent {
	return &DrawerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DrawerCreated", "Drawer", d.ID),
		DrawerID:        d.ID,
		Code:            d.Code,
		Name:            d.Name,
		StartingFloat:   d.StartingFloat,
	}
}

// SessionOpenedEvent is raised when a drawer session is opened
type SessionOpenedEvent struct {
	shared.BaseDomainEvent
	SessionID       uuid.UUID         `json:"session_id"`
	DrawerID        uuid.UUID         `json:"drawer_id"`
	SessionNumber   string            `json:"session_number"`
	OpenedBy        uuid.UUID         `json:"opened_by"`
	OpenedAt        time.Time         `json:"opened_at"`
	StartingBalance valueobject.Money `json:"starting_balance"`
}

// EventType returns the event type name
func (e *SessionOpenedEvent) EventType() string {
	return "SessionOpened"
}

// NewSessionOpenedEvent creates a new SessionOpenedEvent
func NewSessionOpenedEvent(s *DrawerSession) *SessionOpenedEvent {
	return &SessionOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SessionOpened", "DrawerSession", s.ID),
		SessionID:       s.ID,
		DrawerID:        s.DrawerID,
		SessionNumber:   s.SessionNumber,
		OpenedBy:        s.OpenedBy,
		OpenedAt:        s.OpenedAt,
		StartingBalance: s.StartingBalance,
	}
}

// SessionClosedEvent is raised when a session reaches a reconciled terminal
// status
type SessionClosedEvent struct {
	shared.BaseDomainEvent
	SessionID       uuid.UUID         `json:"session_id"`
	DrawerID        uuid.UUID         `json:"drawer_id"`
	SessionNumber   string            `json:"session_number"`
	Status          SessionStatus     `json:"status"`
	ExpectedBalance valueobject.Money `json:"expected_balance"`
	EndingBalance   valueobject.Money `json:"ending_balance"`
	Difference      valueobject.Money `json:"difference"`
	ClosedBy        uuid.UUID         `json:"closed_by"`
	ClosedAt        time.Time         `json:"closed_at"`
}

// EventType returns the event type name
func (e *SessionClosedEvent) EventType() string {
	return "SessionClosed"
}

// NewSessionClosedEvent creates a new SessionClosedEvent
func NewSessionClosedEvent(s *DrawerSession, result *ReconciliationResult) *SessionClosedEvent {
	var closedBy uuid.UUID
	if s.ClosedBy != nil {
		closedBy = *s.ClosedBy
	}
	var closedAt time.Time
	if s.ClosedAt != nil {
		closedAt = *s.ClosedAt
	}
	return &SessionClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SessionClosed", "DrawerSession", s.ID),
		SessionID:       s.ID,
		DrawerID:        s.DrawerID,
		SessionNumber:   s.SessionNumber,
		Status:          result.Status,
		ExpectedBalance: result.ExpectedBalance,
		EndingBalance:   result.EndingBalance,
		Difference:      result.Difference,
		ClosedBy:        closedBy,
		ClosedAt:        closedAt,
	}
}

// SessionCancelledEvent is raised when a session is administratively
// cancelled
type SessionCancelledEvent struct {
	shared.BaseDomainEvent
	SessionID     uuid.UUID `json:"session_id"`
	DrawerID      uuid.UUID `json:"drawer_id"`
	SessionNumber string    `json:"session_number"`
	Reason        string    `json:"reason"`
}

// EventType returns the event type name
func (e *SessionCancelledEvent) EventType() string {
	return "SessionCancelled"
}

// NewSessionCancelledEvent creates a new SessionCancelledEvent
func NewSessionCancelledEvent(s *DrawerSession, reason string) *SessionCancelledEvent {
	return &SessionCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SessionCancelled", "DrawerSession", s.ID),
		SessionID:       s.ID,
		DrawerID:        s.DrawerID,
		SessionNumber:   s.SessionNumber,
		Reason:          reason,
	}
}

// CashTransactionRecordedEvent is raised when a cash movement is appended to
// an open session's ledger
type CashTransactionRecordedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID         `json:"transaction_id"`
	SessionID     uuid.UUID         `json:"session_id"`
	DrawerID      uuid.UUID         `json:"drawer_id"`
	Type          TransactionType   `json:"transaction_type"`
	Amount        valueobject.Money `json:"amount"`
	SignedAmount  valueobject.Money `json:"signed_amount"`
	CreatedBy     uuid.UUID         `json:"created_by"`
}

// EventType returns the event type name
func (e *CashTransactionRecordedEvent) EventType() string {
	return "CashTransactionRecorded"
}

// NewCashTransactionRecordedEvent creates a new CashTransactionRecordedEvent
func NewCashTransactionRecordedEvent(tx *CashTransaction, drawerID uuid.UUID) *CashTransactionRecordedEvent {
	return &CashTransactionRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CashTransactionRecorded", "DrawerSession", tx.SessionID),
		TransactionID:   tx.ID,
		SessionID:       tx.SessionID,
		DrawerID:        drawerID,
		Type:            tx.Type,
		Amount:          tx.Amount,
		SignedAmount:    tx.SignedAmount(),
		CreatedBy:       tx.CreatedBy,
	}
}
