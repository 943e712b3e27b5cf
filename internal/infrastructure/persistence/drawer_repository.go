package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/drawer"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDrawerRepository implements drawer.DrawerRepository using GORM
type GormDrawerRepository struct {
	db *gorm.DB
}

// NewGormDrawerRepository creates a new GormDrawerRepository
func NewGormDrawerRepository(db *gorm.DB) *GormDrawerRepository {
	return &GormDrawerRepository{db: db}
}

// FindByID finds a drawer by ID
func (r *GormDrawerRepository) FindByID(ctx context.Context, id uuid.UUID) (*drawer.Drawer, error) {
	var d drawer.Drawer
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindByCode finds a drawer by its register code
func (r *GormDrawerRepository) FindByCode(ctx context.Context, code string) (*drawer.Drawer, error) {
	var d drawer.Drawer
	if err := r.db.WithContext(ctx).First(&d, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindAllActive returns every active drawer ordered by code
func (r *GormDrawerRepository) FindAllActive(ctx context.Context) ([]drawer.Drawer, error) {
	var drawers []drawer.Drawer
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&drawers).Error; err != nil {
		return nil, err
	}
	return drawers, nil
}

// FindAll returns drawers matching the filter ordered by code
func (r *GormDrawerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]drawer.Drawer, error) {
	var drawers []drawer.Drawer
	query := r.db.WithContext(ctx)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}

	query = query.Order("code ASC")
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	if err := query.Find(&drawers).Error; err != nil {
		return nil, err
	}
	return drawers, nil
}

// Save persists a drawer
func (r *GormDrawerRepository) Save(ctx context.Context, d *drawer.Drawer) error {
	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		if isDuplicateKeyError(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithLock persists drawer mutations with a version check. Columns are
// named explicitly so zero values like is_active=false are still written.
func (r *GormDrawerRepository) SaveWithLock(ctx context.Context, d *drawer.Drawer) error {
	result := r.db.WithContext(ctx).
		Model(d).
		Where("id = ? AND version = ?", d.ID, d.Version-1).
		Updates(map[string]interface{}{
			"name":            d.Name,
			"location":        d.Location,
			"is_active":       d.IsActive,
			"current_balance": d.CurrentBalance,
			"version":         d.Version,
			"updated_at":      d.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ drawer.DrawerRepository = (*GormDrawerRepository)(nil)
