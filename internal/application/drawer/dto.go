package drawer

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/drawer"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

// =============================================================================
// Drawer DTOs
// =============================================================================

// CreateDrawerRequest represents a request to register a new cash drawer
type CreateDrawerRequest struct {
	Code          string `json:"code" binding:"required,min=1,max=20"`
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Location      string `json:"location" binding:"max=200"`
	StartingFloat string `json:"starting_float" binding:"omitempty"` // decimal dollars, e.g. "200.00"
}

// DrawerResponse represents a drawer in API responses
type DrawerResponse struct {
	ID             uuid.UUID         `json:"id"`
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	Location       string            `json:"location"`
	StartingFloat  valueobject.Money `json:"starting_float"`
	IsActive       bool              `json:"is_active"`
	CurrentBalance valueobject.Money `json:"current_balance"`
	HasOpenSession bool              `json:"has_open_session"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Version        int               `json:"version"`
}

// ToDrawerResponse converts a drawer aggregate to its API representation
func ToDrawerResponse(d *drawer.Drawer, hasOpenSession bool) DrawerResponse {
	return DrawerResponse{
		ID:             d.ID,
		Code:           d.Code,
		Name:           d.Name,
		Location:       d.Location,
		StartingFloat:  d.StartingFloat,
		IsActive:       d.IsActive,
		CurrentBalance: d.CurrentBalance,
		HasOpenSession: hasOpenSession,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
		Version:        d.Version,
	}
}

// =============================================================================
// Session DTOs
// =============================================================================

// OpenSessionRequest represents a request to open a drawer session
type OpenSessionRequest struct {
	Denominations valueobject.DenominationSet `json:"denominations" binding:"required"`
	Notes         string                      `json:"notes"`
	OpenedBy      uuid.UUID                   `json:"-"` // set from request identity, not from body
}

// CloseSessionRequest represents a request to close a drawer session
type CloseSessionRequest struct {
	Denominations    valueobject.DenominationSet `json:"denominations" binding:"required"`
	Notes            string                      `json:"notes"`
	DifferenceReason string                      `json:"difference_reason"`
	ClosedBy         uuid.UUID                   `json:"-"`
}

// CancelSessionRequest represents an administrative session cancellation
type CancelSessionRequest struct {
	Reason      string    `json:"reason" binding:"required,min=1,max=500"`
	CancelledBy uuid.UUID `json:"-"`
}

// RecordTransactionRequest represents a cash movement to append to an open
// session. Amount is submitted in decimal dollars and parsed to exact cents.
type RecordTransactionRequest struct {
	Type          string     `json:"type" binding:"required,oneof=sale refund deposit withdrawal till_payback"`
	Amount        string     `json:"amount" binding:"required"`
	PaymentMethod string     `json:"payment_method" binding:"max=30"`
	Description   string     `json:"description" binding:"max=500"`
	Notes         string     `json:"notes"`
	ReferenceType string     `json:"reference_type" binding:"max=50"`
	ReferenceID   *uuid.UUID `json:"reference_id"`
	CreatedBy     uuid.UUID  `json:"-"`
}

// SessionResponse represents a session in API responses
type SessionResponse struct {
	ID                    uuid.UUID                   `json:"id"`
	DrawerID              uuid.UUID                   `json:"drawer_id"`
	SessionNumber         string                      `json:"session_number"`
	Status                drawer.SessionStatus        `json:"status"`
	OpenedBy              uuid.UUID                   `json:"opened_by"`
	OpenedAt              time.Time                   `json:"opened_at"`
	StartingBalance       valueobject.Money           `json:"starting_balance"`
	StartingDenominations valueobject.DenominationSet `json:"starting_denominations"`
	StartingNotes         string                      `json:"starting_notes,omitempty"`
	ClosedBy              *uuid.UUID                  `json:"closed_by,omitempty"`
	ClosedAt              *time.Time                  `json:"closed_at,omitempty"`
	EndingBalance         *valueobject.Money          `json:"ending_balance,omitempty"`
	EndingDenominations   valueobject.DenominationSet `json:"ending_denominations"`
	EndingNotes           string                      `json:"ending_notes,omitempty"`
	ExpectedBalance       *valueobject.Money          `json:"expected_balance,omitempty"`
	Difference            *valueobject.Money          `json:"difference,omitempty"`
	DifferenceReason      string                      `json:"difference_reason,omitempty"`
	TotalSales            valueobject.Money           `json:"total_sales"`
	TotalRefunds          valueobject.Money           `json:"total_refunds"`
	TotalDeposits         valueobject.Money           `json:"total_deposits"`
	TotalWithdrawals      valueobject.Money           `json:"total_withdrawals"`
	TotalPaybacks         valueobject.Money           `json:"total_paybacks"`
	CancelReason          string                      `json:"cancel_reason,omitempty"`
	Version               int                         `json:"version"`
}

// ToSessionResponse converts a session aggregate to its API representation
func ToSessionResponse(s *drawer.DrawerSession) SessionResponse {
	return SessionResponse{
		ID:                    s.ID,
		DrawerID:              s.DrawerID,
		SessionNumber:         s.SessionNumber,
		Status:                s.Status,
		OpenedBy:              s.OpenedBy,
		OpenedAt:              s.OpenedAt,
		StartingBalance:       s.StartingBalance,
		StartingDenominations: s.StartingDenominations,
		StartingNotes:         s.StartingNotes,
		ClosedBy:              s.ClosedBy,
		ClosedAt:              s.ClosedAt,
		EndingBalance:         s.EndingBalance,
		EndingDenominations:   s.EndingDenominations,
		EndingNotes:           s.EndingNotes,
		ExpectedBalance:       s.ExpectedBalance,
		Difference:            s.Difference,
		DifferenceReason:      s.DifferenceReason,
		TotalSales:            s.TotalSales,
		TotalRefunds:          s.TotalRefunds,
		TotalDeposits:         s.TotalDeposits,
		TotalWithdrawals:      s.TotalWithdrawals,
		TotalPaybacks:         s.TotalPaybacks,
		CancelReason:          s.CancelReason,
		Version:               s.Version,
	}
}

// OpenSessionStatusResponse is a currently open session with its live
// expected balance, which is computed on read and never persisted while the
// session remains open.
type OpenSessionStatusResponse struct {
	SessionResponse
	ExpectedCurrentBalance valueobject.Money       `json:"expected_current_balance"`
	Breakdown              drawer.BalanceBreakdown `json:"breakdown"`
	TransactionCount       int                     `json:"transaction_count"`
}

// CloseSessionResponse is the reconciliation outcome of a close
type CloseSessionResponse struct {
	Session        SessionResponse             `json:"session"`
	Reconciliation drawer.ReconciliationResult `json:"reconciliation"`
	Variance       *VarianceResponse           `json:"variance,omitempty"`
}

// =============================================================================
// Transaction DTOs
// =============================================================================

// TransactionResponse represents a cash movement in API responses
type TransactionResponse struct {
	ID            uuid.UUID              `json:"id"`
	SessionID     uuid.UUID              `json:"session_id"`
	Type          drawer.TransactionType `json:"type"`
	Amount        valueobject.Money      `json:"amount"`
	SignedAmount  valueobject.Money      `json:"signed_amount"`
	PaymentMethod string                 `json:"payment_method"`
	Description   string                 `json:"description,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	ReferenceType string                 `json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID             `json:"reference_id,omitempty"`
	CreatedBy     uuid.UUID              `json:"created_by"`
	CreatedAt     time.Time              `json:"created_at"`
}

// ToTransactionResponse converts a ledger record to its API representation
func ToTransactionResponse(tx *drawer.CashTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID,
		SessionID:     tx.SessionID,
		Type:          tx.Type,
		Amount:        tx.Amount,
		SignedAmount:  tx.SignedAmount(),
		PaymentMethod: tx.PaymentMethod,
		Description:   tx.Description,
		Notes:         tx.Notes,
		ReferenceType: tx.ReferenceType,
		ReferenceID:   tx.ReferenceID,
		CreatedBy:     tx.CreatedBy,
		CreatedAt:     tx.CreatedAt,
	}
}

// VarianceResponse represents a recorded variance in API responses
type VarianceResponse struct {
	ID          uuid.UUID           `json:"id"`
	SessionID   uuid.UUID           `json:"session_id"`
	Type        drawer.VarianceType `json:"type"`
	Amount      valueobject.Money   `json:"amount"`
	Description string              `json:"description,omitempty"`
	CreatedBy   uuid.UUID           `json:"created_by"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ToVarianceResponse converts a variance record to its API representation
func ToVarianceResponse(v *drawer.CashVariance) VarianceResponse {
	return VarianceResponse{
		ID:          v.ID,
		SessionID:   v.SessionID,
		Type:        v.Type,
		Amount:      v.Amount,
		Description: v.Description,
		CreatedBy:   v.CreatedBy,
		CreatedAt:   v.CreatedAt,
	}
}

// =============================================================================
// Audit DTOs
// =============================================================================

// ListSessionsRequest represents session history query parameters
type ListSessionsRequest struct {
	DrawerID *uuid.UUID `form:"drawer_id"`
	Status   string     `form:"status"`
	FromDate string     `form:"from_date"` // RFC 3339 or 2006-01-02
	ToDate   string     `form:"to_date"`
	Page     int        `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// SessionDetailResponse is a session with its full ledger and variance history
type SessionDetailResponse struct {
	Session      SessionResponse         `json:"session"`
	Transactions []TransactionResponse   `json:"transactions"`
	Variances    []VarianceResponse      `json:"variances"`
	Breakdown    drawer.BalanceBreakdown `json:"breakdown"`
}
