package persistence

import (
	"context"

	appdrawer "github.com/pos/backend/internal/application/drawer"
	"github.com/pos/backend/internal/domain/drawer"
	"gorm.io/gorm"
)

// GormTransactionScope executes drawer operations inside a single database
// transaction so the session row lock, ledger writes, and variance records
// commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appdrawer.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{
			drawerRepo:      NewGormDrawerRepository(tx),
			sessionRepo:     NewGormSessionRepository(tx),
			transactionRepo: NewGormCashTransactionRepository(tx),
			varianceRepo:    NewGormCashVarianceRepository(tx),
		}
		return fn(repos)
	})
}

// gormTransactionalRepositories exposes repositories bound to one transaction
type gormTransactionalRepositories struct {
	drawerRepo      *GormDrawerRepository
	sessionRepo     *GormSessionRepository
	transactionRepo *GormCashTransactionRepository
	varianceRepo    *GormCashVarianceRepository
}

func (r *gormTransactionalRepositories) DrawerRepo() drawer.DrawerRepository {
	return r.drawerRepo
}

func (r *gormTransactionalRepositories) SessionRepo() drawer.SessionRepository {
	return r.sessionRepo
}

func (r *gormTransactionalRepositories) TransactionRepo() drawer.CashTransactionRepository {
	return r.transactionRepo
}

func (r *gormTransactionalRepositories) VarianceRepo() drawer.CashVarianceRepository {
	return r.varianceRepo
}

var _ appdrawer.TransactionScope = (*GormTransactionScope)(nil)
var _ appdrawer.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
