package drawer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/drawer"
	"github.com/pos/backend/internal/domain/shared"
)

// AuditService provides read-only access to session history. It never
// mutates state.
type AuditService struct {
	sessionRepo  drawer.SessionRepository
	txRepo       drawer.CashTransactionRepository
	varianceRepo drawer.CashVarianceRepository
	calculator   *drawer.BalanceCalculator
}

// NewAuditService creates a new AuditService
func NewAuditService(
	sessionRepo drawer.SessionRepository,
	txRepo drawer.CashTransactionRepository,
	varianceRepo drawer.CashVarianceRepository,
	calculator *drawer.BalanceCalculator,
) *AuditService {
	return &AuditService{
		sessionRepo:  sessionRepo,
		txRepo:       txRepo,
		varianceRepo: varianceRepo,
		calculator:   calculator,
	}
}

// sessionFilterFrom translates the request into a repository filter
func sessionFilterFrom(req ListSessionsRequest) (drawer.SessionFilter, error) {
	filter := drawer.SessionFilter{Filter: shared.DefaultFilter()}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.OrderBy = "opened_at"
	filter.DrawerID = req.DrawerID

	if req.Status != "" {
		status := drawer.SessionStatus(req.Status)
		if !status.IsValid() {
			return filter, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown session status %q", req.Status))
		}
		filter.Status = &status
	}

	parse := func(value string) (*time.Time, error) {
		if value == "" {
			return nil, nil
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, value); err == nil {
				return &t, nil
			}
		}
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unparseable date %q", value))
	}

	var err error
	if filter.FromDate, err = parse(req.FromDate); err != nil {
		return filter, err
	}
	if filter.ToDate, err = parse(req.ToDate); err != nil {
		return filter, err
	}
	return filter, nil
}

// ListSessions returns paginated session history, newest first
func (s *AuditService) ListSessions(ctx context.Context, req ListSessionsRequest) (*shared.Paginated[SessionResponse], error) {
	filter, err := sessionFilterFrom(req)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.sessionRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		items = append(items, ToSessionResponse(&sessions[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetSessionDetail returns a session with its full ledger, variance records
// and per-type breakdown
func (s *AuditService) GetSessionDetail(ctx context.Context, sessionID uuid.UUID) (*SessionDetailResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.txRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	variances, err := s.varianceRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	txResponses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		txResponses = append(txResponses, ToTransactionResponse(&transactions[i]))
	}
	varResponses := make([]VarianceResponse, 0, len(variances))
	for i := range variances {
		varResponses = append(varResponses, ToVarianceResponse(&variances[i]))
	}

	return &SessionDetailResponse{
		Session:      ToSessionResponse(session),
		Transactions: txResponses,
		Variances:    varResponses,
		Breakdown:    s.calculator.Breakdown(transactions),
	}, nil
}

// ListOpenSessions returns every open session with its live expected balance
// computed from the current ledger
func (s *AuditService) ListOpenSessions(ctx context.Context) ([]OpenSessionStatusResponse, error) {
	sessions, err := s.sessionRepo.FindAllOpen(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]OpenSessionStatusResponse, 0, len(sessions))
	for i := range sessions {
		session := &sessions[i]
		transactions, err := s.txRepo.FindBySession(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, OpenSessionStatusResponse{
			SessionResponse:        ToSessionResponse(session),
			ExpectedCurrentBalance: s.calculator.ExpectedBalance(session, transactions),
			Breakdown:              s.calculator.Breakdown(transactions),
			TransactionCount:       len(transactions),
		})
	}
	return responses, nil
}

// ExportSession renders a session and its ledger as CSV. The export is a
// pure read with no side effects.
func (s *AuditService) ExportSession(ctx context.Context, sessionID uuid.UUID) ([]byte, error) {
	detail, err := s.GetSessionDetail(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	session := detail.Session
	summary := [][]string{
		{"session_number", session.SessionNumber},
		{"drawer_id", session.DrawerID.String()},
		{"status", string(session.Status)},
		{"opened_by", session.OpenedBy.String()},
		{"opened_at", session.OpenedAt.Format(time.RFC3339)},
		{"starting_balance", session.StartingBalance.String()},
	}
	if session.ClosedAt != nil {
		summary = append(summary,
			[]string{"closed_by", session.ClosedBy.String()},
			[]string{"closed_at", session.ClosedAt.Format(time.RFC3339)},
		)
	}
	// cancelled sessions carry no reconciliation figures
	if session.EndingBalance != nil {
		summary = append(summary,
			[]string{"ending_balance", session.EndingBalance.String()},
			[]string{"expected_balance", session.ExpectedBalance.String()},
			[]string{"difference", session.Difference.String()},
		)
		if session.DifferenceReason != "" {
			summary = append(summary, []string{"difference_reason", session.DifferenceReason})
		}
	}
	for _, row := range summary {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	if err := w.Write([]string{}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"created_at", "type", "amount", "signed_amount", "payment_method", "description", "created_by"}); err != nil {
		return nil, err
	}
	for _, tx := range detail.Transactions {
		row := []string{
			tx.CreatedAt.Format(time.RFC3339),
			string(tx.Type),
			tx.Amount.String(),
			tx.SignedAmount.String(),
			tx.PaymentMethod,
			tx.Description,
			tx.CreatedBy.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
