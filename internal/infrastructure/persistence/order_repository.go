package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reves-en-feuilles/backend/internal/domain/order"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// GormOrderRepository implements the order Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by id within an organization
func (r *GormOrderRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll returns orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var out []order.Order
	q := r.filteredQuery(ctx, orgID, filter)
	if err := applyFilter(q, filter).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var n int64
	if err := r.filteredQuery(ctx, orgID, filter).
		Model(&order.Order{}).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Save persists the order
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// Delete removes the order row. Its movements stay in the ledger; the
// service reverts them before calling this.
func (r *GormOrderRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&order.Order{}).Error
}

func (r *GormOrderRepository) filteredQuery(ctx context.Context, orgID uuid.UUID, filter shared.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Where("org_id = ?", orgID)
	if filter.Search != "" {
		q = q.Where("order_number LIKE ? OR customer_name LIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		q = q.Where("status = ?", status)
	}
	if channel, ok := filter.Filters["channel"]; ok {
		q = q.Where("channel = ?", channel)
	}
	return q
}

var _ order.Repository = (*GormOrderRepository)(nil)
