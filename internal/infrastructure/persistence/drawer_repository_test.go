package persistence

import (
	"context"
	"database/sql"
	"testing"

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

// newMockDrawerRepository creates a GormDrawerRepository with a mocked SQL connection
func newMockDrawerRepository(t *testing.T) (*GormDrawerRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormDrawerRepository(gormDB), mock, mockDB
}

func drawerRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "version", "code", "name", "location", "starting_float", "is_active", "current_balance"}).
		AddRow(id, 1, "001", "Front Register", "Main Floor", int64(20000), true, int64(20000))
}

func TestGormDrawerRepository_FindByID(t *testing.T) {
	t.Run("finds existing drawer", func(t *testing.T) {
		repo, mock, mockDB := newMockDrawerRepository(t)
		defer mockDB.Close()

		drawerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "cash_drawers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(drawerID, 1).
			WillReturnRows(drawerRows(drawerID))

		d, err := repo.FindByID(context.Background(), drawerID)

		assert.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, drawerID, d.ID)
		assert.Equal(t, "001", d.Code)
		assert.Equal(t, int64(20000), d.StartingFloat.Cents())
		assert.True(t, d.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing drawer", func(t *testing.T) {
		repo, mock, mockDB := newMockDrawerRepository(t)
		defer mockDB.Close()

		drawerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "cash_drawers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(drawerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		d, err := repo.FindByID(context.Background(), drawerID)

		assert.Error(t, err)
		assert.Nil(t, d)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormDrawerRepository_FindByCode(t *testing.T) {
	t.Run("finds drawer by code", func(t *testing.T) {
		repo, mock, mockDB := newMockDrawerRepository(t)
		defer mockDB.Close()

		drawerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "cash_drawers" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("001", 1).
			WillReturnRows(drawerRows(drawerID))

		d, err := repo.FindByCode(context.Background(), "001")

		assert.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "001", d.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDrawerRepository_FindAllActive(t *testing.T) {
	t.Run("returns active drawers ordered by code", func(t *testing.T) {
		repo, mock, mockDB := newMockDrawerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "cash_drawers" WHERE is_active = \$1 ORDER BY code ASC`).
			WithArgs(true).
			WillReturnRows(drawerRows(uuid.New()))

		drawers, err := repo.FindAllActive(context.Background())

		assert.NoError(t, err)
		assert.Len(t, drawers, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDrawerRepository_Save(t *testing.T) {
	t.Run("saves drawer", func(t *testing.T) {
		repo, mock, mockDB := newMockDrawerRepository(t)
		defer mockDB.Close()

		d, err := drawer.NewDrawer("001", "Front Register", "Main Floor", valueobject.NewMoneyFromCents(20000))
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "cash_drawers" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), d)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps duplicate code to conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockDrawerRepository(t)
		defer mockDB.Close()

		d, err := drawer.NewDrawer("001", "Front Register", "Main Floor", valueobject.NewMoneyFromCents(20000))
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "cash_drawers" SET`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err = repo.Save(context.Background(), d)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrAlreadyExists, err)
	})
}

func TestGormDrawerRepository_FindAll(t *testing.T) {
	t.Run("applies search and pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockDrawerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "cash_drawers" WHERE code ILIKE \$1 OR name ILIKE \$2 ORDER BY code ASC LIMIT \$3 OFFSET \$4`).
			WithArgs("%front%", "%front%", 10, 10).
			WillReturnRows(drawerRows(uuid.New()))

		drawers, err := repo.FindAll(context.Background(), shared.Filter{
			Search:   "front",
			Page:     2,
			PageSize: 10,
		})

		assert.NoError(t, err)
		assert.Len(t, drawers, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no filter lists everything ordered by code", func(t *testing.T) {
		repo, mock, mockDB := newMockDrawerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "cash_drawers" ORDER BY code ASC`).
			WillReturnRows(drawerRows(uuid.New()))

		drawers, err := repo.FindAll(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.Len(t, drawers, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDrawerRepository_SaveWithLock(t *testing.T) {
	t.Run("writes is_active when deactivating", func(t *testing.T) {
		repo, mock, mockDB := newMockDrawerRepository(t)
		defer mockDB.Close()

		d, err := drawer.NewDrawer("001", "Front Register", "Main Floor", valueobject.NewMoneyFromCents(20000))
		require.NoError(t, err)
		require.NoError(t, d.Deactivate())

		// is_active must appear in the SET list even though false is the
		// zero value for bool.
		mock.ExpectExec(`UPDATE "cash_drawers" SET .*"is_active"=\$2.* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), d)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when version is stale", func(t *testing.T) {
		repo, mock, mockDB := newMockDrawerRepository(t)
		defer mockDB.Close()

		d, err := drawer.NewDrawer("001", "Front Register", "Main Floor", valueobject.NewMoneyFromCents(20000))
		require.NoError(t, err)
		require.NoError(t, d.Deactivate())

		mock.ExpectExec(`UPDATE "cash_drawers" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), d)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
	})
}
