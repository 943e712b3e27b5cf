package drawer

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/drawer"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockDrawerRepository is a mock implementation of drawer.DrawerRepository
type MockDrawerRepository struct {
	mock.Mock
}

func (m *MockDrawerRepository) FindByID(ctx context.Context, id uuid.UUID) (*drawer.Drawer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drawer.Drawer), args.Error(1)
}

func (m *MockDrawerRepository) FindByCode(ctx context.Context, code string) (*drawer.Drawer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drawer.Drawer), args.Error(1)
}

func (m *MockDrawerRepository) FindAllActive(ctx context.Context) ([]drawer.Drawer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]drawer.Drawer), args.Error(1)
}

func (m *MockDrawerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]drawer.Drawer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]drawer.Drawer), args.Error(1)
}

func (m *MockDrawerRepository) Save(ctx context.Context, d *drawer.Drawer) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDrawerRepository) SaveWithLock(ctx context.Context, d *drawer.Drawer) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of drawer.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*drawer.DrawerSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drawer.DrawerSession), args.Error(1)
}

func (m *MockSessionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*drawer.DrawerSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drawer.DrawerSession), args.Error(1)
}

func (m *MockSessionRepository) FindBySessionNumber(ctx context.Context, sessionNumber string) (*drawer.DrawerSession, error) {
	args := m.Called(ctx, sessionNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drawer.DrawerSession), args.Error(1)
}

func (m *MockSessionRepository) FindOpenByDrawer(ctx context.Context, drawerID uuid.UUID) (*drawer.DrawerSession, error) {
	args := m.Called(ctx, drawerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drawer.DrawerSession), args.Error(1)
}

func (m *MockSessionRepository) HasOpenSession(ctx context.Context, drawerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, drawerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) FindAllOpen(ctx context.Context) ([]drawer.DrawerSession, error) {
	args := m.Called(ctx)
	return args.Get(0).([]drawer.DrawerSession), args.Error(1)
}

func (m *MockSessionRepository) FindAll(ctx context.Context, filter drawer.SessionFilter) ([]drawer.DrawerSession, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]drawer.DrawerSession), args.Error(1)
}

func (m *MockSessionRepository) Count(ctx context.Context, filter drawer.SessionFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) Create(ctx context.Context, s *drawer.DrawerSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) SaveWithLock(ctx context.Context, s *drawer.DrawerSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockCashTransactionRepository is a mock implementation of drawer.CashTransactionRepository
type MockCashTransactionRepository struct {
	mock.Mock
}

func (m *MockCashTransactionRepository) Create(ctx context.Context, tx *drawer.CashTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCashTransactionRepository) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]drawer.CashTransaction, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]drawer.CashTransaction), args.Error(1)
}

// MockCashVarianceRepository is a mock implementation of drawer.CashVarianceRepository
type MockCashVarianceRepository struct {
	mock.Mock
}

func (m *MockCashVarianceRepository) Create(ctx context.Context, v *drawer.CashVariance) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockCashVarianceRepository) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]drawer.CashVariance, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]drawer.CashVariance), args.Error(1)
}

var (
	_ drawer.DrawerRepository          = (*MockDrawerRepository)(nil)
	_ drawer.SessionRepository         = (*MockSessionRepository)(nil)
	_ drawer.CashTransactionRepository = (*MockCashTransactionRepository)(nil)
	_ drawer.CashVarianceRepository    = (*MockCashVarianceRepository)(nil)
)
