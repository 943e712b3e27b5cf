package drawer

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/drawer"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// DrawerService handles drawer registry operations
type DrawerService struct {
	drawerRepo     drawer.DrawerRepository
	sessionRepo    drawer.SessionRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewDrawerService creates a new DrawerService
func NewDrawerService(
	drawerRepo drawer.DrawerRepository,
	sessionRepo drawer.SessionRepository,
	logger *zap.Logger,
) *DrawerService {
	return &DrawerService{
		drawerRepo:  drawerRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *DrawerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new cash drawer
func (s *DrawerService) Create(ctx context.Context, req CreateDrawerRequest) (*DrawerResponse, error) {
	startingFloat := valueobject.ZeroMoney()
	if req.StartingFloat != "" {
		var err error
		startingFloat, err = valueobject.NewMoneyFromString(req.StartingFloat)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_STARTING_FLOAT", err.Error())
		}
	}

	if existing, err := s.drawerRepo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A drawer with this code already exists")
	}

	d, err := drawer.NewDrawer(req.Code, req.Name, req.Location, startingFloat)
	if err != nil {
		return nil, err
	}

	if err := s.drawerRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("Drawer registered",
		zap.String("code", d.Code),
		zap.String("name", d.Name))

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, d.GetDomainEvents()...)
		d.ClearDomainEvents()
	}

	resp := ToDrawerResponse(d, false)
	return &resp, nil
}

// Get returns a drawer by ID
func (s *DrawerService) Get(ctx context.Context, id uuid.UUID) (*DrawerResponse, error) {
	d, err := s.drawerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	hasOpen, err := s.sessionRepo.HasOpenSession(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDrawerResponse(d, hasOpen)
	return &resp, nil
}

// ListActive returns all drawers available for sessions
func (s *DrawerService) ListActive(ctx context.Context) ([]DrawerResponse, error) {
	drawers, err := s.drawerRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]DrawerResponse, 0, len(drawers))
	for i := range drawers {
		hasOpen, err := s.sessionRepo.HasOpenSession(ctx, drawers[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, ToDrawerResponse(&drawers[i], hasOpen))
	}
	return responses, nil
}

// Activate returns a deactivated drawer to service
func (s *DrawerService) Activate(ctx context.Context, id uuid.UUID) (*DrawerResponse, error) {
	d, err := s.drawerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.Activate(); err != nil {
		return nil, err
	}
	if err := s.drawerRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}
	resp := ToDrawerResponse(d, false)
	return &resp, nil
}

// Deactivate removes a drawer from service. A drawer with an open session
// cannot be deactivated until the session is closed or cancelled.
func (s *DrawerService) Deactivate(ctx context.Context, id uuid.UUID) (*DrawerResponse, error) {
	d, err := s.drawerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hasOpen, err := s.sessionRepo.HasOpenSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if hasOpen {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot deactivate a drawer with an open session")
	}

	if err := d.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.drawerRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}
	resp := ToDrawerResponse(d, false)
	return &resp, nil
}
