package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// GormIngredientRepository implements IngredientRepository using GORM
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GormIngredientRepository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// FindByID finds an ingredient by id within an organization
func (r *GormIngredientRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*inventory.Ingredient, error) {
	var ing inventory.Ingredient
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ? AND status <> ?", orgID, id, inventory.IngredientStatusDeleted).
		First(&ing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ing, nil
}

// FindAll returns ingredients matching the filter, soft-deleted rows excluded
func (r *GormIngredientRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]inventory.Ingredient, error) {
	var out []inventory.Ingredient
	q := r.activeQuery(ctx, orgID)
	if filter.Search != "" {
		q = q.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := applyFilter(q, filter).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByCategory returns all ingredients of one category
func (r *GormIngredientRepository) FindByCategory(ctx context.Context, orgID uuid.UUID, category inventory.Category) ([]inventory.Ingredient, error) {
	var out []inventory.Ingredient
	if err := r.activeQuery(ctx, orgID).
		Where("category = ?", category).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindBelowThreshold returns ingredients whose cached stock fell under
// their alert threshold. Strictly under, matching Ingredient.IsBelowThreshold,
// so the listing and the threshold event agree at exactly-threshold stock.
func (r *GormIngredientRepository) FindBelowThreshold(ctx context.Context, orgID uuid.UUID) ([]inventory.Ingredient, error) {
	var out []inventory.Ingredient
	if err := r.activeQuery(ctx, orgID).
		Where("alert_threshold > 0 AND current_stock < alert_threshold").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CountBySupplier counts ingredients linked to a supplier
func (r *GormIngredientRepository) CountBySupplier(ctx context.Context, orgID, supplierID uuid.UUID) (int64, error) {
	var n int64
	if err := r.activeQuery(ctx, orgID).
		Model(&inventory.Ingredient{}).
		Where("supplier_id = ?", supplierID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Count counts ingredients matching the filter
func (r *GormIngredientRepository) Count(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error) {
	var n int64
	q := r.activeQuery(ctx, orgID).Model(&inventory.Ingredient{})
	if filter.Search != "" {
		q = q.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Save persists the ingredient
func (r *GormIngredientRepository) Save(ctx context.Context, ing *inventory.Ingredient) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

// Delete removes the row. The service layer soft-deletes through Save;
// this exists for cleanup tooling.
func (r *GormIngredientRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&inventory.Ingredient{}).Error
}

func (r *GormIngredientRepository) activeQuery(ctx context.Context, orgID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("org_id = ? AND status <> ?", orgID, inventory.IngredientStatusDeleted)
}

var _ inventory.IngredientRepository = (*GormIngredientRepository)(nil)
