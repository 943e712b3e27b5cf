package drawer

import (
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

// DefaultReasonThresholdCents is the variance above which a close must
// carry an explanation ($1.00).
const DefaultReasonThresholdCents = 100

// ReconciliationResult is the outcome of closing a session
type ReconciliationResult struct {
	Status          SessionStatus     `json:"status"`
	ExpectedBalance valueobject.Money `json:"expected_balance"`
	EndingBalance   valueobject.Money `json:"ending_balance"`
	Difference      valueobject.Money `json:"difference"`
}

// ReconciliationClassifier classifies closing outcomes and decides when a
// discrepancy is large enough to require a written reason.
type ReconciliationClassifier struct {
	reasonThresholdCents int64
}

// NewReconciliationClassifier creates a classifier with the given reason
// threshold in cents. A non-positive threshold falls back to the default.
func NewReconciliationClassifier(reasonThresholdCents int64) *ReconciliationClassifier {
	if reasonThresholdCents <= 0 {
		reasonThresholdCents = DefaultReasonThresholdCents
	}
	return &ReconciliationClassifier{reasonThresholdCents: reasonThresholdCents}
}

// Classify maps a counted-minus-expected difference to a terminal status.
// Amounts are exact cents, so balanced means exactly zero.
func (c *ReconciliationClassifier) Classify(difference valueobject.Money) SessionStatus {
	switch {
	case difference.IsZero():
		return SessionStatusBalanced
	case difference.IsPositive():
		return SessionStatusOver
	default:
		return SessionStatusShort
	}
}

// RequiresReason returns true when the absolute difference exceeds the
// reason threshold
func (c *ReconciliationClassifier) RequiresReason(difference valueobject.Money) bool {
	return difference.Abs().Cents() > c.reasonThresholdCents
}

// ThresholdCents returns the configured reason threshold
func (c *ReconciliationClassifier) ThresholdCents() int64 {
	return c.reasonThresholdCents
}

// VarianceTypeFor maps a non-zero difference to its variance classification
func VarianceTypeFor(difference valueobject.Money) VarianceType {
	if difference.IsPositive() {
		return VarianceTypeOverage
	}
	return VarianceTypeShortage
}
