package drawer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/drawer"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// SessionService orchestrates the drawer session state machine: open,
// record, close and cancel. Every mutation runs inside a transaction scope
// so the open invariant and close barrier hold under concurrent callers.
type SessionService struct {
	scope          TransactionScope
	calculator     *drawer.BalanceCalculator
	classifier     *drawer.ReconciliationClassifier
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewSessionService creates a new SessionService
func NewSessionService(
	scope TransactionScope,
	calculator *drawer.BalanceCalculator,
	classifier *drawer.ReconciliationClassifier,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		scope:      scope,
		calculator: calculator,
		classifier: classifier,
		logger:     logger,
		now:        time.Now,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *SessionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the time source, used by tests
func (s *SessionService) SetClock(now func() time.Time) {
	s.now = now
}

// Open starts a new session on the drawer. The starting balance is computed
// server-side from the submitted denomination counts. The existence check and
// insert happen in one transaction; a concurrent open for the same drawer
// loses on the partial unique open-session index and surfaces as a conflict.
func (s *SessionService) Open(ctx context.Context, drawerID uuid.UUID, req OpenSessionRequest) (*SessionResponse, error) {
	var session *drawer.DrawerSession

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		d, err := repos.DrawerRepo().FindByID(ctx, drawerID)
		if err != nil {
			return err
		}

		hasOpen, err := repos.SessionRepo().HasOpenSession(ctx, drawerID)
		if err != nil {
			return err
		}
		if hasOpen {
			return shared.NewDomainError("ALREADY_EXISTS", "Drawer already has an open session")
		}

		session, err = drawer.NewDrawerSession(d, req.OpenedBy, req.Denominations, req.Notes, s.now())
		if err != nil {
			return err
		}

		return repos.SessionRepo().Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Drawer session opened",
		zap.String("session_number", session.SessionNumber),
		zap.String("drawer_id", drawerID.String()),
		zap.Int64("starting_balance_cents", session.StartingBalance.Cents()))

	s.publishDomainEvents(ctx, session)

	resp := ToSessionResponse(session)
	return &resp, nil
}

// Record appends a cash movement to an open session's ledger. The session
// row is locked and its status re-verified inside the same transaction as
// the insert, so a record can never commit after a close has committed.
func (s *SessionService) Record(ctx context.Context, sessionID uuid.UUID, req RecordTransactionRequest) (*TransactionResponse, error) {
	amount, err := valueobject.NewMoneyFromString(req.Amount)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_AMOUNT", err.Error())
	}

	var (
		tx       *drawer.CashTransaction
		drawerID uuid.UUID
	)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		session, err := repos.SessionRepo().FindByIDForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if !session.IsOpen() {
			return shared.NewDomainError("INVALID_STATE", "Session is not open")
		}
		drawerID = session.DrawerID

		tx, err = drawer.NewCashTransaction(sessionID, drawer.TransactionType(req.Type),
			amount, req.PaymentMethod, req.Description, req.Notes, req.CreatedBy, s.now())
		if err != nil {
			return err
		}
		if req.ReferenceType != "" && req.ReferenceID != nil {
			tx.WithReference(req.ReferenceType, *req.ReferenceID)
		}

		return repos.TransactionRepo().Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, drawer.NewCashTransactionRecordedEvent(tx, drawerID))
	}

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// Close reconciles an open session against a physical denomination count and
// moves it to a terminal status. The session row is locked before the ledger
// is read, so the expected balance reflects exactly the transactions whose
// record committed before this close. Any failure rolls back everything and
// leaves the session open.
func (s *SessionService) Close(ctx context.Context, sessionID uuid.UUID, req CloseSessionRequest) (*CloseSessionResponse, error) {
	var (
		session  *drawer.DrawerSession
		result   *drawer.ReconciliationResult
		variance *drawer.CashVariance
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		session, err = repos.SessionRepo().FindByIDForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}

		transactions, err := repos.TransactionRepo().FindBySession(ctx, sessionID)
		if err != nil {
			return err
		}

		expected := s.calculator.ExpectedBalance(session, transactions)
		breakdown := s.calculator.Breakdown(transactions)

		result, err = session.Close(req.ClosedBy, req.Denominations, req.Notes,
			req.DifferenceReason, expected, breakdown, s.classifier, s.now())
		if err != nil {
			return err
		}

		if err := repos.SessionRepo().SaveWithLock(ctx, session); err != nil {
			return err
		}

		// Discrepancies above the reason threshold produce a variance record
		// in the same transaction as the close.
		if s.classifier.RequiresReason(result.Difference) {
			variance, err = drawer.NewCashVariance(session.ID, result.Difference,
				req.DifferenceReason, req.ClosedBy, s.now())
			if err != nil {
				return err
			}
			if err := repos.VarianceRepo().Create(ctx, variance); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Drawer session closed",
		zap.String("session_number", session.SessionNumber),
		zap.String("status", string(result.Status)),
		zap.Int64("difference_cents", result.Difference.Cents()))

	s.publishDomainEvents(ctx, session)

	resp := &CloseSessionResponse{
		Session:        ToSessionResponse(session),
		Reconciliation: *result,
	}
	if variance != nil {
		v := ToVarianceResponse(variance)
		resp.Variance = &v
	}
	return resp, nil
}

// Cancel administratively terminates an open session without reconciliation
func (s *SessionService) Cancel(ctx context.Context, sessionID uuid.UUID, req CancelSessionRequest) (*SessionResponse, error) {
	var session *drawer.DrawerSession

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		session, err = repos.SessionRepo().FindByIDForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := session.Cancel(req.CancelledBy, req.Reason, s.now()); err != nil {
			return err
		}
		return repos.SessionRepo().SaveWithLock(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Drawer session cancelled",
		zap.String("session_number", session.SessionNumber),
		zap.String("reason", req.Reason))

	s.publishDomainEvents(ctx, session)

	resp := ToSessionResponse(session)
	return &resp, nil
}

// publishDomainEvents publishes and clears the aggregate's pending events
func (s *SessionService) publishDomainEvents(ctx context.Context, session *drawer.DrawerSession) {
	if s.eventPublisher == nil {
		return
	}
	events := session.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	session.ClearDomainEvents()
}
