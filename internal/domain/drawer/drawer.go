package drawer

import (
	"time"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

// Drawer represents a physical cash register till tracked as a named resource.
// Drawers are created by configuration, soft-deactivated only, never deleted.
type Drawer struct {
	shared.BaseAggregateRoot
	Code           string            `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name           string            `gorm:"type:varchar(100);not null"`
	Location       string            `gorm:"type:varchar(200)"`
	StartingFloat  valueobject.Money `gorm:"type:bigint;not null;default:0"`
	IsActive       bool              `gorm:"not null;default:true;index"`
	CurrentBalance valueobject.Money `gorm:"type:bigint;not null;default:0"` // cached; maintained by the balance projector
}

// TableName returns the table name for GORM
func (Drawer) TableName() string {
	return "cash_drawers"
}

// NewDrawer creates a new cash drawer
func NewDrawer(code, name, location string, startingFloat valueobject.Money) (*Drawer, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_DRAWER_CODE", "Drawer code cannot be empty")
	}
	if len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_DRAWER_CODE", "Drawer code cannot exceed 20 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_DRAWER_NAME", "Drawer name cannot be empty")
	}
	if startingFloat.IsNegative() {
		return nil, shared.NewDomainError("INVALID_STARTING_FLOAT", "Starting float cannot be negative")
	}

	d := &Drawer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Location:          location,
		StartingFloat:     startingFloat,
		IsActive:          true,
		CurrentBalance:    startingFloat,
	}

	d.AddDomainEvent(NewDrawerCreatedEvent(d))

	return d, nil
}

// Activate marks the drawer as available for sessions
func (d *Drawer) Activate() error {
	if d.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Drawer is already active")
	}
	d.IsActive = true
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// Deactivate removes the drawer from service without deleting its history
func (d *Drawer) Deactivate() error {
	if !d.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Drawer is already inactive")
	}
	d.IsActive = false
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// SetCurrentBalance updates the cached display balance
func (d *Drawer) SetCurrentBalance(balance valueobject.Money) {
	d.CurrentBalance = balance
	d.UpdatedAt = time.Now()
}
