package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pos/backend/internal/domain/drawer"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionRepository implements drawer.SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// FindByID finds a session by ID
func (r *GormSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*drawer.DrawerSession, error) {
	var session drawer.DrawerSession
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindByIDForUpdate finds a session by ID holding a row lock until the
// surrounding transaction commits. This is the close barrier: both record
// and close take this lock before touching the ledger.
func (r *GormSessionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*drawer.DrawerSession, error) {
	var session drawer.DrawerSession
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindBySessionNumber finds a session by its unique label
func (r *GormSessionRepository) FindBySessionNumber(ctx context.Context, sessionNumber string) (*drawer.DrawerSession, error) {
	var session drawer.DrawerSession
	if err := r.db.WithContext(ctx).First(&session, "session_number = ?", sessionNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindOpenByDrawer returns the open session for a drawer, if any
func (r *GormSessionRepository) FindOpenByDrawer(ctx context.Context, drawerID uuid.UUID) (*drawer.DrawerSession, error) {
	var session drawer.DrawerSession
	if err := r.db.WithContext(ctx).
		First(&session, "drawer_id = ? AND status = ?", drawerID, drawer.SessionStatusOpen).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// HasOpenSession reports whether the drawer currently has an open session
func (r *GormSessionRepository) HasOpenSession(ctx context.Context, drawerID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&drawer.DrawerSession{}).
		Where("drawer_id = ? AND status = ?", drawerID, drawer.SessionStatusOpen).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAllOpen returns every currently open session, oldest first
func (r *GormSessionRepository) FindAllOpen(ctx context.Context) ([]drawer.DrawerSession, error) {
	var sessions []drawer.DrawerSession
	if err := r.db.WithContext(ctx).
		Where("status = ?", drawer.SessionStatusOpen).
		Order("opened_at ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// applyFilter narrows a query by the session filter fields
func applySessionFilter(query *gorm.DB, filter drawer.SessionFilter) *gorm.DB {
	if filter.DrawerID != nil {
		query = query.Where("drawer_id = ?", *filter.DrawerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("opened_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("opened_at <= ?", *filter.ToDate)
	}
	return query
}

// FindAll returns sessions matching the filter, newest first
func (r *GormSessionRepository) FindAll(ctx context.Context, filter drawer.SessionFilter) ([]drawer.DrawerSession, error) {
	var sessions []drawer.DrawerSession
	query := applySessionFilter(r.db.WithContext(ctx), filter)

	query = query.Order("opened_at DESC")
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Count returns the number of sessions matching the filter
func (r *GormSessionRepository) Count(ctx context.Context, filter drawer.SessionFilter) (int64, error) {
	var count int64
	query := applySessionFilter(r.db.WithContext(ctx).Model(&drawer.DrawerSession{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new session. The partial unique index on
// (drawer_id) WHERE status = 'open' turns a lost open race into a
// duplicate-key error, surfaced as a conflict.
func (r *GormSessionRepository) Create(ctx context.Context, s *drawer.DrawerSession) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if isDuplicateKeyError(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithLock persists session mutations with a version check. A stale
// version means another writer got there first. Columns are named
// explicitly so zero-value counts and empty strings are still written.
func (r *GormSessionRepository) SaveWithLock(ctx context.Context, s *drawer.DrawerSession) error {
	result := r.db.WithContext(ctx).
		Model(s).
		Where("id = ? AND version = ?", s.ID, s.Version-1).
		Updates(map[string]interface{}{
			"status":            s.Status,
			"closed_by":         s.ClosedBy,
			"closed_at":         s.ClosedAt,
			"ending_balance":    s.EndingBalance,
			"ending_bills_100":  s.EndingDenominations.Bills100,
			"ending_bills_50":   s.EndingDenominations.Bills50,
			"ending_bills_20":   s.EndingDenominations.Bills20,
			"ending_bills_10":   s.EndingDenominations.Bills10,
			"ending_bills_5":    s.EndingDenominations.Bills5,
			"ending_bills_2":    s.EndingDenominations.Bills2,
			"ending_bills_1":    s.EndingDenominations.Bills1,
			"ending_coins_100":  s.EndingDenominations.Coins100,
			"ending_coins_25":   s.EndingDenominations.Coins25,
			"ending_coins_10":   s.EndingDenominations.Coins10,
			"ending_coins_5":    s.EndingDenominations.Coins5,
			"ending_coins_1":    s.EndingDenominations.Coins1,
			"ending_notes":      s.EndingNotes,
			"difference_reason": s.DifferenceReason,
			"expected_balance":  s.ExpectedBalance,
			"difference":        s.Difference,
			"total_sales":       s.TotalSales,
			"total_refunds":     s.TotalRefunds,
			"total_deposits":    s.TotalDeposits,
			"total_withdrawals": s.TotalWithdrawals,
			"total_paybacks":    s.TotalPaybacks,
			"cancel_reason":     s.CancelReason,
			"version":           s.Version,
			"updated_at":        s.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// isDuplicateKeyError recognizes unique-constraint violations across the
// gorm error translation, the postgres driver error, and raw error text
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value")
}

var _ drawer.SessionRepository = (*GormSessionRepository)(nil)
