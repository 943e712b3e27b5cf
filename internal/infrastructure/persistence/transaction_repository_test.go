package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/drawer"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockLedgerRepositories(t *testing.T) (*GormCashTransactionRepository, *GormCashVarianceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCashTransactionRepository(gormDB), NewGormCashVarianceRepository(gormDB), mock, mockDB
}

func TestGormCashTransactionRepository(t *testing.T) {
	t.Run("creates ledger entry", func(t *testing.T) {
		txRepo, _, mock, mockDB := newMockLedgerRepositories(t)
		defer mockDB.Close()

		tx, err := drawer.NewCashTransaction(
			uuid.New(),
			drawer.TransactionTypeSale,
			valueobject.NewMoneyFromCents(15000),
			"cash",
			"Morning sales",
			"",
			uuid.New(),
			time.Now(),
		)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "cash_transactions"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err = txRepo.Create(context.Background(), tx)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lists ledger in creation order", func(t *testing.T) {
		txRepo, _, mock, mockDB := newMockLedgerRepositories(t)
		defer mockDB.Close()

		sessionID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "session_id", "transaction_type", "amount", "payment_method", "created_by", "created_at"}).
			AddRow(uuid.New(), sessionID, "sale", int64(15000), "cash", uuid.New(), time.Now()).
			AddRow(uuid.New(), sessionID, "refund", int64(2000), "cash", uuid.New(), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "cash_transactions" WHERE session_id = \$1 ORDER BY created_at ASC, id ASC`).
			WithArgs(sessionID).
			WillReturnRows(rows)

		transactions, err := txRepo.FindBySession(context.Background(), sessionID)

		assert.NoError(t, err)
		require.Len(t, transactions, 2)
		assert.Equal(t, drawer.TransactionTypeSale, transactions[0].Type)
		assert.Equal(t, int64(15000), transactions[0].Amount.Cents())
		assert.Equal(t, drawer.TransactionTypeRefund, transactions[1].Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCashVarianceRepository(t *testing.T) {
	t.Run("creates variance record", func(t *testing.T) {
		_, varianceRepo, mock, mockDB := newMockLedgerRepositories(t)
		defer mockDB.Close()

		variance, err := drawer.NewCashVariance(
			uuid.New(),
			valueobject.NewMoneyFromCents(500),
			"Counted extra bill during close",
			uuid.New(),
			time.Now(),
		)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "cash_variances"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err = varianceRepo.Create(context.Background(), variance)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lists variances for session", func(t *testing.T) {
		_, varianceRepo, mock, mockDB := newMockLedgerRepositories(t)
		defer mockDB.Close()

		sessionID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "session_id", "variance_type", "amount", "description", "created_by", "created_at"}).
			AddRow(uuid.New(), sessionID, "overage", int64(500), "Counted extra bill", uuid.New(), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "cash_variances" WHERE session_id = \$1 ORDER BY created_at ASC`).
			WithArgs(sessionID).
			WillReturnRows(rows)

		variances, err := varianceRepo.FindBySession(context.Background(), sessionID)

		assert.NoError(t, err)
		require.Len(t, variances, 1)
		assert.Equal(t, drawer.VarianceTypeOverage, variances[0].Type)
		assert.Equal(t, int64(500), variances[0].Amount.Cents())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
