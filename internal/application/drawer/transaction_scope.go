package drawer

import (
	"context"

	"github.com/pos/backend/internal/domain/drawer"
)

// TransactionScope provides transactional access to drawer repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Both the open invariant and the close barrier depend on
// this: the session row lock taken inside the scope is held until commit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all drawer repositories within
// a transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// DrawerRepo returns the drawer repository scoped to the current transaction
	DrawerRepo() drawer.DrawerRepository
	// SessionRepo returns the session repository scoped to the current transaction
	SessionRepo() drawer.SessionRepository
	// TransactionRepo returns the cash transaction repository scoped to the current transaction
	TransactionRepo() drawer.CashTransactionRepository
	// VarianceRepo returns the cash variance repository scoped to the current transaction
	VarianceRepo() drawer.CashVarianceRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	drawerRepo      drawer.DrawerRepository
	sessionRepo     drawer.SessionRepository
	transactionRepo drawer.CashTransactionRepository
	varianceRepo    drawer.CashVarianceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	drawerRepo drawer.DrawerRepository,
	sessionRepo drawer.SessionRepository,
	transactionRepo drawer.CashTransactionRepository,
	varianceRepo drawer.CashVarianceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		drawerRepo:      drawerRepo,
		sessionRepo:     sessionRepo,
		transactionRepo: transactionRepo,
		varianceRepo:    varianceRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// DrawerRepo returns the drawer repository.
func (s *NoOpTransactionScope) DrawerRepo() drawer.DrawerRepository {
	return s.drawerRepo
}

// SessionRepo returns the session repository.
func (s *NoOpTransactionScope) SessionRepo() drawer.SessionRepository {
	return s.sessionRepo
}

// TransactionRepo returns the cash transaction repository.
func (s *NoOpTransactionScope) TransactionRepo() drawer.CashTransactionRepository {
	return s.transactionRepo
}

// VarianceRepo returns the cash variance repository.
func (s *NoOpTransactionScope) VarianceRepo() drawer.CashVarianceRepository {
	return s.varianceRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
