package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by id within an organization
func (r *GormSupplierRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*inventory.Supplier, error) {
	var s inventory.Supplier
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll returns suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]inventory.Supplier, error) {
	var out []inventory.Supplier
	q := r.db.WithContext(ctx).Where("org_id = ?", orgID)
	if filter.Search != "" {
		q = q.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := applyFilter(q, filter).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the supplier
func (r *GormSupplierRepository) Save(ctx context.Context, s *inventory.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Delete removes the supplier row
func (r *GormSupplierRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&inventory.Supplier{}).Error
}

var _ inventory.SupplierRepository = (*GormSupplierRepository)(nil)
