package drawer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// SessionFilter defines filtering options for session queries
type SessionFilter struct {
	shared.Filter
	DrawerID *uuid.UUID     // Filter by drawer
	Status   *SessionStatus // Filter by status
	FromDate *time.Time     // Filter by opened_at range start
	ToDate   *time.Time     // Filter by opened_at range end
}

// DrawerRepository defines the interface for cash drawer persistence
type DrawerRepository interface {
	// FindByID finds a drawer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Drawer, error)

	// FindByCode finds a drawer by its unique human code
	FindByCode(ctx context.Context, code string) (*Drawer, error)

	// FindAllActive returns all drawers available for sessions
	FindAllActive(ctx context.Context) ([]Drawer, error)

	// FindAll returns all drawers with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Drawer, error)

	// Save creates or updates a drawer
	Save(ctx context.Context, d *Drawer) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, d *Drawer) error
}

// SessionRepository defines the interface for drawer session persistence
type SessionRepository interface {
	// FindByID finds a session by ID
	FindByID(ctx context.Context, id uuid.UUID) (*DrawerSession, error)

	// FindByIDForUpdate finds a session by ID holding a row lock for the
	// duration of the surrounding transaction. Callers must invoke this
	// inside a transaction scope.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*DrawerSession, error)

	// FindBySessionNumber finds a session by its unique label
	FindBySessionNumber(ctx context.Context, sessionNumber string) (*DrawerSession, error)

	// FindOpenByDrawer returns the open session for a drawer, if any
	FindOpenByDrawer(ctx context.Context, drawerID uuid.UUID) (*DrawerSession, error)

	// HasOpenSession reports whether the drawer currently has an open session
	HasOpenSession(ctx context.Context, drawerID uuid.UUID) (bool, error)

	// FindAllOpen returns every currently open session
	FindAllOpen(ctx context.Context) ([]DrawerSession, error)

	// FindAll returns sessions matching the filter, newest first
	FindAll(ctx context.Context, filter SessionFilter) ([]DrawerSession, error)

	// Count returns the number of sessions matching the filter
	Count(ctx context.Context, filter SessionFilter) (int64, error)

	// Create inserts a new session. A unique-constraint violation on the
	// open-session index is mapped to shared.ErrAlreadyExists.
	Create(ctx context.Context, s *DrawerSession) error

	// SaveWithLock persists session mutations with a version check
	SaveWithLock(ctx context.Context, s *DrawerSession) error
}

// CashTransactionRepository defines the interface for the append-only ledger
type CashTransactionRepository interface {
	// Create appends a transaction to the ledger
	Create(ctx context.Context, tx *CashTransaction) error

	// FindBySession returns a session's transactions in creation order
	FindBySession(ctx context.Context, sessionID uuid.UUID) ([]CashTransaction, error)
}

// CashVarianceRepository defines the interface for variance records
type CashVarianceRepository interface {
	// Create appends a variance record
	Create(ctx context.Context, v *CashVariance) error

	// FindBySession returns the variance records for a session
	FindBySession(ctx context.Context, sessionID uuid.UUID) ([]CashVariance, error)
}
