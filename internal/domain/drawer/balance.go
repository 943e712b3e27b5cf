package drawer

import (
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

// BalanceBreakdown aggregates a session's ledger by transaction type.
// NetChange is independent of the starting balance.
type BalanceBreakdown struct {
	TotalSales       valueobject.Money `json:"total_sales"`
	TotalRefunds     valueobject.Money `json:"total_refunds"`
	TotalDeposits    valueobject.Money `json:"total_deposits"`
	TotalWithdrawals valueobject.Money `json:"total_withdrawals"`
	TotalPaybacks    valueobject.Money `json:"total_paybacks"`
	NetChange        valueobject.Money `json:"net_change"`
}

// BalanceCalculator derives expected balances and counted totals from the
// ledger and denomination snapshots. It is stateless and side-effect free.
type BalanceCalculator struct{}

// NewBalanceCalculator creates a balance calculator
func NewBalanceCalculator() *BalanceCalculator {
	return &BalanceCalculator{}
}

// ExpectedBalance computes starting balance plus signed cash flow over the
// given transactions. The sign of each movement is derived from its type.
func (c *BalanceCalculator) ExpectedBalance(session *DrawerSession, transactions []CashTransaction) valueobject.Money {
	balance := session.StartingBalance
	for i := range transactions {
		balance = balance.Add(transactions[i].SignedAmount())
	}
	return balance
}

// CountedTotal computes the exact value of a physical denomination count
func (c *BalanceCalculator) CountedTotal(denominations valueobject.DenominationSet) valueobject.Money {
	return denominations.Total()
}

// Breakdown aggregates the ledger by transaction type for reporting
func (c *BalanceCalculator) Breakdown(transactions []CashTransaction) BalanceBreakdown {
	var b BalanceBreakdown
	for i := range transactions {
		tx := &transactions[i]
		switch tx.Type {
		case TransactionTypeSale:
			b.TotalSales = b.TotalSales.Add(tx.Amount)
		case TransactionTypeRefund:
			b.TotalRefunds = b.TotalRefunds.Add(tx.Amount)
		case TransactionTypeDeposit:
			b.TotalDeposits = b.TotalDeposits.Add(tx.Amount)
		case TransactionTypeWithdrawal:
			b.TotalWithdrawals = b.TotalWithdrawals.Add(tx.Amount)
		case TransactionTypeTillPayback:
			b.TotalPaybacks = b.TotalPaybacks.Add(tx.Amount)
		}
	}
	b.NetChange = b.TotalSales.Add(b.TotalDeposits).Add(b.TotalPaybacks).
		Subtract(b.TotalRefunds).Subtract(b.TotalWithdrawals)
	return b
}
