package drawer

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/drawer"
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DrawerBalanceProjector keeps the cached current_balance on each drawer in
// step with session activity. The cached value is a display convenience; the
// ledger remains the source of truth.
type DrawerBalanceProjector struct {
	drawerRepo drawer.DrawerRepository
	logger     *zap.Logger
}

// NewDrawerBalanceProjector creates a new projector
func NewDrawerBalanceProjector(drawerRepo drawer.DrawerRepository, logger *zap.Logger) *DrawerBalanceProjector {
	return &DrawerBalanceProjector{
		drawerRepo: drawerRepo,
		logger:     logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *DrawerBalanceProjector) EventTypes() []string {
	return []string{"SessionOpened", "CashTransactionRecorded", "SessionClosed"}
}

// Handle updates the drawer's cached balance from session events
func (h *DrawerBalanceProjector) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *drawer.SessionOpenedEvent:
		return h.update(ctx, e.DrawerID, func(d *drawer.Drawer) {
			d.SetCurrentBalance(e.StartingBalance)
		})
	case *drawer.CashTransactionRecordedEvent:
		return h.update(ctx, e.DrawerID, func(d *drawer.Drawer) {
			d.SetCurrentBalance(d.CurrentBalance.Add(e.SignedAmount))
		})
	case *drawer.SessionClosedEvent:
		return h.update(ctx, e.DrawerID, func(d *drawer.Drawer) {
			d.SetCurrentBalance(e.EndingBalance)
		})
	default:
		h.logger.Warn("drawer balance projector received unexpected event",
			zap.String("event_type", event.EventType()))
		return nil
	}
}

// update loads the drawer, applies the mutation and saves it. Projection
// failures are logged and returned; the event bus does not retry, and the
// cached balance self-corrects on the next session event for the drawer.
func (h *DrawerBalanceProjector) update(ctx context.Context, drawerID uuid.UUID, apply func(*drawer.Drawer)) error {
	d, err := h.drawerRepo.FindByID(ctx, drawerID)
	if err != nil {
		h.logger.Error("drawer balance projection failed to load drawer",
			zap.String("drawer_id", drawerID.String()),
			zap.Error(err))
		return err
	}

	apply(d)

	if err := h.drawerRepo.Save(ctx, d); err != nil {
		h.logger.Error("drawer balance projection failed to save drawer",
			zap.String("drawer_id", drawerID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

var _ shared.EventHandler = (*DrawerBalanceProjector)(nil)
