package drawer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

// DrawerSession is one open-to-close shift on a single drawer. It is the
// unit of mutual exclusion: at most one session per drawer may be open at
// any instant, and a closed session is immutable.
type DrawerSession struct {
	shared.BaseAggregateRoot
	DrawerID              uuid.UUID                   `gorm:"type:uuid;not null;index"`
	SessionNumber         string                      `gorm:"type:varchar(50);not null;uniqueIndex"`
	OpenedBy              uuid.UUID                   `gorm:"type:uuid;not null"`
	OpenedAt              time.Time                   `gorm:"not null;index"`
	StartingBalance       valueobject.Money           `gorm:"type:bigint;not null"`
	StartingDenominations valueobject.DenominationSet `gorm:"embedded;embeddedPrefix:starting_"`
	StartingNotes         string                      `gorm:"type:text"`
	Status                SessionStatus               `gorm:"type:varchar(20);not null;default:'open';index"`
	ClosedBy              *uuid.UUID                  `gorm:"type:uuid"`
	ClosedAt              *time.Time                  `gorm:"index"`
	EndingBalance         *valueobject.Money          `gorm:"type:bigint"`
	EndingDenominations   valueobject.DenominationSet `gorm:"embedded;embeddedPrefix:ending_"`
	EndingNotes           string                      `gorm:"type:text"`
	DifferenceReason      string                      `gorm:"type:varchar(500)"`
	ExpectedBalance       *valueobject.Money          `gorm:"type:bigint"` // stored at close for audit
	Difference            *valueobject.Money          `gorm:"type:bigint"`
	TotalSales            valueobject.Money           `gorm:"type:bigint;not null;default:0"`
	TotalRefunds          valueobject.Money           `gorm:"type:bigint;not null;default:0"`
	TotalDeposits         valueobject.Money           `gorm:"type:bigint;not null;default:0"`
	TotalWithdrawals      valueobject.Money           `gorm:"type:bigint;not null;default:0"`
	TotalPaybacks         valueobject.Money           `gorm:"type:bigint;not null;default:0"`
	CancelReason          string                      `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DrawerSession) TableName() string {
	return "cash_drawer_sessions"
}

// NewSessionNumber builds the human-readable session label:
// CS-<date>-<drawer code>-<unix seconds>.
func NewSessionNumber(drawerCode string, openedAt time.Time) string {
	return fmt.Sprintf("CS-%s-%s-%d", openedAt.Format("20060102"), drawerCode, openedAt.Unix())
}

// NewDrawerSession opens a session on the given drawer. The starting balance
// is always recomputed from the submitted denomination counts.
func NewDrawerSession(
	d *Drawer,
	openedBy uuid.UUID,
	startingDenominations valueobject.DenominationSet,
	notes string,
	openedAt time.Time,
) (*DrawerSession, error) {
	if d == nil {
		return nil, shared.NewDomainError("INVALID_DRAWER", "Drawer is required")
	}
	if !d.IsActive {
		return nil, shared.NewDomainError("DRAWER_INACTIVE", fmt.Sprintf("Drawer %s is not active", d.Code))
	}
	if openedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Opening user ID is required")
	}
	if err := startingDenominations.Validate(); err != nil {
		return nil, shared.NewDomainError("INVALID_DENOMINATIONS", err.Error())
	}
	if openedAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_OPENED_AT", "Opening time is required")
	}

	s := &DrawerSession{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		DrawerID:              d.ID,
		SessionNumber:         NewSessionNumber(d.Code, openedAt),
		OpenedBy:              openedBy,
		OpenedAt:              openedAt,
		StartingBalance:       startingDenominations.Total(),
		StartingDenominations: startingDenominations,
		StartingNotes:         notes,
		Status:                SessionStatusOpen,
	}

	s.AddDomainEvent(NewSessionOpenedEvent(s))

	return s, nil
}

// IsOpen returns true if the session still accepts transactions
func (s *DrawerSession) IsOpen() bool {
	return s.Status == SessionStatusOpen
}

// Close reconciles the session against a physical count and moves it to a
// terminal status. The expected balance and breakdown must be computed from
// the ledger inside the same storage transaction that persists the close.
// Every error leaves the session unchanged and still open.
func (s *DrawerSession) Close(
	closedBy uuid.UUID,
	endingDenominations valueobject.DenominationSet,
	notes string,
	differenceReason string,
	expected valueobject.Money,
	breakdown BalanceBreakdown,
	classifier *ReconciliationClassifier,
	closedAt time.Time,
) (*ReconciliationResult, error) {
	if !s.IsOpen() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot close session in %s status", s.Status))
	}
	if closedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Closing user ID is required")
	}
	if err := endingDenominations.Validate(); err != nil {
		return nil, shared.NewDomainError("INVALID_DENOMINATIONS", err.Error())
	}
	if closedAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_CLOSED_AT", "Closing time is required")
	}

	endingBalance := endingDenominations.Total()
	difference := endingBalance.Subtract(expected)

	if classifier.RequiresReason(difference) && differenceReason == "" {
		return nil, shared.NewDomainError("REASON_REQUIRED",
			fmt.Sprintf("Difference of %s exceeds threshold; a reason is required", difference.String()))
	}

	status := classifier.Classify(difference)

	s.Status = status
	s.ClosedBy = &closedBy
	s.ClosedAt = &closedAt
	s.EndingBalance = &endingBalance
	s.EndingDenominations = endingDenominations
	s.EndingNotes = notes
	s.DifferenceReason = differenceReason
	s.ExpectedBalance = &expected
	s.Difference = &difference
	s.TotalSales = breakdown.TotalSales
	s.TotalRefunds = breakdown.TotalRefunds
	s.TotalDeposits = breakdown.TotalDeposits
	s.TotalWithdrawals = breakdown.TotalWithdrawals
	s.TotalPaybacks = breakdown.TotalPaybacks
	s.UpdatedAt = closedAt
	s.IncrementVersion()

	result := &ReconciliationResult{
		Status:          status,
		ExpectedBalance: expected,
		EndingBalance:   endingBalance,
		Difference:      difference,
	}

	s.AddDomainEvent(NewSessionClosedEvent(s, result))

	return result, nil
}

// Cancel administratively terminates an open session without financial
// classification
func (s *DrawerSession) Cancel(cancelledBy uuid.UUID, reason string, cancelledAt time.Time) error {
	if !s.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel session in %s status", s.Status))
	}
	if cancelledBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Cancelling user ID is required")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	s.Status = SessionStatusCancelled
	s.ClosedBy = &cancelledBy
	s.ClosedAt = &cancelledAt
	s.CancelReason = reason
	s.UpdatedAt = cancelledAt
	s.IncrementVersion()

	s.AddDomainEvent(NewSessionCancelledEvent(s, reason))

	return nil
}
