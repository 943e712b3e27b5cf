package drawer

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCashTransaction(t *testing.T) {
	sessionID := uuid.New()
	now := time.Now()

	t.Run("creates a valid transaction", func(t *testing.T) {
		tx, err := NewCashTransaction(sessionID, TransactionTypeSale,
			valueobject.NewMoneyFromCents(15000), PaymentMethodCash, "order #1042", "", uuid.New(), now)
		require.NoError(t, err)
		assert.Equal(t, sessionID, tx.SessionID)
		assert.Equal(t, int64(15000), tx.Amount.Cents())
		assert.Equal(t, now, tx.CreatedAt)
	})

	t.Run("defaults payment method to cash", func(t *testing.T) {
		tx, err := NewCashTransaction(sessionID, TransactionTypeDeposit,
			valueobject.NewMoneyFromCents(100), "", "", "", uuid.New(), now)
		require.NoError(t, err)
		assert.Equal(t, PaymentMethodCash, tx.PaymentMethod)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		for _, cents := range []int64{0, -100} {
			_, err := NewCashTransaction(sessionID, TransactionTypeSale,
				valueobject.NewMoneyFromCents(cents), PaymentMethodCash, "", "", uuid.New(), now)
			require.Error(t, err)
			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, "INVALID_AMOUNT", de.Code)
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewCashTransaction(sessionID, TransactionType("loan"),
			valueobject.NewMoneyFromCents(100), PaymentMethodCash, "", "", uuid.New(), now)
		require.Error(t, err)
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "INVALID_TRANSACTION_TYPE", de.Code)
	})

	t.Run("rejects nil session", func(t *testing.T) {
		_, err := NewCashTransaction(uuid.Nil, TransactionTypeSale,
			valueobject.NewMoneyFromCents(100), PaymentMethodCash, "", "", uuid.New(), now)
		assert.Error(t, err)
	})
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		txType TransactionType
		want   int64
	}{
		{TransactionTypeSale, 500},
		{TransactionTypeDeposit, 500},
		{TransactionTypeTillPayback, 500},
		{TransactionTypeRefund, -500},
		{TransactionTypeWithdrawal, -500},
	}

	for _, tt := range tests {
		t.Run(string(tt.txType), func(t *testing.T) {
			tx := mustTx(t, uuid.New(), tt.txType, 500)
			assert.Equal(t, tt.want, tx.SignedAmount().Cents())
			// stored amount stays positive
			assert.Equal(t, int64(500), tx.Amount.Cents())
		})
	}
}

func TestWithReference(t *testing.T) {
	tx := mustTx(t, uuid.New(), TransactionTypeSale, 100)
	orderID := uuid.New()
	tx.WithReference("order", orderID)
	assert.Equal(t, "order", tx.ReferenceType)
	require.NotNil(t, tx.ReferenceID)
	assert.Equal(t, orderID, *tx.ReferenceID)
}

func TestNewCashVariance(t *testing.T) {
	sessionID := uuid.New()
	now := time.Now()

	t.Run("overage from positive difference", func(t *testing.T) {
		v, err := NewCashVariance(sessionID, valueobject.NewMoneyFromCents(500), "till overage", uuid.New(), now)
		require.NoError(t, err)
		assert.Equal(t, VarianceTypeOverage, v.Type)
		assert.Equal(t, int64(500), v.Amount.Cents())
	})

	t.Run("shortage from negative difference stores absolute amount", func(t *testing.T) {
		v, err := NewCashVariance(sessionID, valueobject.NewMoneyFromCents(-750), "miscount", uuid.New(), now)
		require.NoError(t, err)
		assert.Equal(t, VarianceTypeShortage, v.Type)
		assert.Equal(t, int64(750), v.Amount.Cents())
	})

	t.Run("rejects zero difference", func(t *testing.T) {
		_, err := NewCashVariance(sessionID, valueobject.ZeroMoney(), "", uuid.New(), now)
		assert.Error(t, err)
	})
}
