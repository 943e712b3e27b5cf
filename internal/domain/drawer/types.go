package drawer

// SessionStatus represents the lifecycle state of a drawer session
type SessionStatus string

const (
	SessionStatusOpen      SessionStatus = "open"
	SessionStatusBalanced  SessionStatus = "balanced"
	SessionStatusOver      SessionStatus = "over"
	SessionStatusShort     SessionStatus = "short"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// IsValid returns true if the status is one of the enumerated values
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusOpen, SessionStatusBalanced, SessionStatusOver,
		SessionStatusShort, SessionStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if no further mutation is allowed in this status
func (s SessionStatus) IsTerminal() bool {
	return s != SessionStatusOpen && s.IsValid()
}

// TransactionType classifies a cash movement within a session
type TransactionType string

const (
	TransactionTypeSale        TransactionType = "sale"
	TransactionTypeRefund      TransactionType = "refund"
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdrawal  TransactionType = "withdrawal"
	TransactionTypeTillPayback TransactionType = "till_payback"
)

// IsValid returns true if the type is one of the enumerated values
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeSale, TransactionTypeRefund, TransactionTypeDeposit,
		TransactionTypeWithdrawal, TransactionTypeTillPayback:
		return true
	}
	return false
}

// IsCashIn returns true for types that add cash to the drawer.
// The sign of a movement is always derived from its type, never stored.
func (t TransactionType) IsCashIn() bool {
	switch t {
	case TransactionTypeSale, TransactionTypeDeposit, TransactionTypeTillPayback:
		return true
	}
	return false
}

// VarianceType classifies a recorded cash variance
type VarianceType string

const (
	VarianceTypeOverage  VarianceType = "overage"
	VarianceTypeShortage VarianceType = "shortage"
)

// PaymentMethodCash is the default payment method for drawer movements
const PaymentMethodCash = "cash"
