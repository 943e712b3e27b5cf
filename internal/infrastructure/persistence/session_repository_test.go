package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/drawer"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSessionRepository creates a GormSessionRepository with a mocked SQL connection
func newMockSessionRepository(t *testing.T) (*GormSessionRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormSessionRepository(gormDB), mock, mockDB
}

func newPersistenceTestSession(t *testing.T) *drawer.DrawerSession {
	t.Helper()

	d, err := drawer.NewDrawer("001", "Front Register", "Main Floor", valueobject.NewMoneyFromCents(20000))
	require.NoError(t, err)

	denoms := valueobject.DenominationSet{Bills100: 3}
	session, err := drawer.NewDrawerSession(d, uuid.New(), denoms, "", time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return session
}

func sessionRows(id, drawerID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "version", "drawer_id", "session_number", "opened_by", "opened_at", "starting_balance", "status"}).
		AddRow(id, 1, drawerID, "CS-20260314-001-1770000000", uuid.New(), time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), int64(30000), "open")
}

func TestGormSessionRepository_FindByID(t *testing.T) {
	t.Run("finds existing session", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		sessionID := uuid.New()
		drawerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "cash_drawer_sessions" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(sessionID, 1).
			WillReturnRows(sessionRows(sessionID, drawerID))

		session, err := repo.FindByID(context.Background(), sessionID)

		assert.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, sessionID, session.ID)
		assert.Equal(t, drawerID, session.DrawerID)
		assert.Equal(t, int64(30000), session.StartingBalance.Cents())
		assert.Equal(t, drawer.SessionStatusOpen, session.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing session", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		sessionID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "cash_drawer_sessions" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(sessionID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		session, err := repo.FindByID(context.Background(), sessionID)

		assert.Error(t, err)
		assert.Nil(t, session)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSessionRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("locks the session row", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		sessionID := uuid.New()
		drawerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "cash_drawer_sessions" WHERE id = \$1 .* FOR UPDATE`).
			WithArgs(sessionID, 1).
			WillReturnRows(sessionRows(sessionID, drawerID))

		session, err := repo.FindByIDForUpdate(context.Background(), sessionID)

		assert.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, sessionID, session.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing session", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		sessionID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "cash_drawer_sessions" WHERE id = \$1 .* FOR UPDATE`).
			WithArgs(sessionID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		session, err := repo.FindByIDForUpdate(context.Background(), sessionID)

		assert.Error(t, err)
		assert.Nil(t, session)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormSessionRepository_HasOpenSession(t *testing.T) {
	t.Run("reports open session", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		drawerID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "cash_drawer_sessions" WHERE drawer_id = \$1 AND status = \$2`).
			WithArgs(drawerID, "open").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		hasOpen, err := repo.HasOpenSession(context.Background(), drawerID)

		assert.NoError(t, err)
		assert.True(t, hasOpen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports no open session", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		drawerID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "cash_drawer_sessions" WHERE drawer_id = \$1 AND status = \$2`).
			WithArgs(drawerID, "open").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		hasOpen, err := repo.HasOpenSession(context.Background(), drawerID)

		assert.NoError(t, err)
		assert.False(t, hasOpen)
	})
}

func TestGormSessionRepository_Create(t *testing.T) {
	t.Run("inserts new session", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		session := newPersistenceTestSession(t)

		mock.ExpectExec(`INSERT INTO "cash_drawer_sessions"`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(context.Background(), session)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps unique violation to conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		session := newPersistenceTestSession(t)

		mock.ExpectExec(`INSERT INTO "cash_drawer_sessions"`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err := repo.Create(context.Background(), session)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrAlreadyExists, err)
	})
}

func TestGormSessionRepository_SaveWithLock(t *testing.T) {
	t.Run("updates with version check", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		session := newPersistenceTestSession(t)
		session.IncrementVersion()

		mock.ExpectExec(`UPDATE "cash_drawer_sessions" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), session)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("writes status and ending counts even at zero", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		session := newPersistenceTestSession(t)
		session.IncrementVersion()

		mock.ExpectExec(`UPDATE "cash_drawer_sessions" SET .*"ending_bills_100"=\$\d+.*"status"=\$\d+.* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), session)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when version is stale", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		session := newPersistenceTestSession(t)
		session.IncrementVersion()

		mock.ExpectExec(`UPDATE "cash_drawer_sessions" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), session)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
	})
}

func TestGormSessionRepository_FindAll(t *testing.T) {
	t.Run("applies filter and pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		drawerID := uuid.New()
		status := drawer.SessionStatusOpen
		filter := drawer.SessionFilter{
			Filter:   shared.Filter{Page: 2, PageSize: 10},
			DrawerID: &drawerID,
			Status:   &status,
		}

		mock.ExpectQuery(`SELECT \* FROM "cash_drawer_sessions" WHERE drawer_id = \$1 AND status = \$2 ORDER BY opened_at DESC LIMIT .* OFFSET .*`).
			WithArgs(drawerID, status, 10, 10).
			WillReturnRows(sessionRows(uuid.New(), drawerID))

		sessions, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, sessions, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSessionRepository_Count(t *testing.T) {
	t.Run("counts matching sessions", func(t *testing.T) {
		repo, mock, mockDB := newMockSessionRepository(t)
		defer mockDB.Close()

		drawerID := uuid.New()
		filter := drawer.SessionFilter{DrawerID: &drawerID}

		mock.ExpectQuery(`SELECT count\(\*\) FROM "cash_drawer_sessions" WHERE drawer_id = \$1`).
			WithArgs(drawerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))

		count, err := repo.Count(context.Background(), filter)

		assert.NoError(t, err)
		assert.Equal(t, int64(41), count)
	})
}
