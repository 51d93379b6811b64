package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
)

// GormStockMovementRepository implements StockMovementRepository using GORM.
// The ledger is append-only: there is no update or delete path here.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append inserts a movement row
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByIngredient returns the ingredient's full movement history,
// newest first
func (r *GormStockMovementRepository) FindByIngredient(ctx context.Context, orgID, ingredientID uuid.UUID) ([]inventory.StockMovement, error) {
	var out []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND ingredient_id = ?", orgID, ingredientID).
		Order("created_at desc").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindBySourceRef returns the movements stamped with a source reference,
// e.g. every movement an order produced
func (r *GormStockMovementRepository) FindBySourceRef(ctx context.Context, orgID uuid.UUID, source inventory.MovementSource, sourceRef string) ([]inventory.StockMovement, error) {
	var out []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND source = ? AND source_ref = ?", orgID, source, sourceRef).
		Order("created_at asc").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SumDeltas returns the signed sum of all movement quantities for an
// ingredient, the ledger's authoritative stock level
func (r *GormStockMovementRepository) SumDeltas(ctx context.Context, orgID, ingredientID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Select("COALESCE(SUM(quantity), 0) AS total").
		Where("org_id = ? AND ingredient_id = ?", orgID, ingredientID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumPurchases aggregates purchase movements for the weighted average cost
func (r *GormStockMovementRepository) SumPurchases(ctx context.Context, orgID, ingredientID uuid.UUID) (inventory.PurchaseTotals, error) {
	var result struct {
		TotalCost     decimal.Decimal
		TotalQuantity decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Select("COALESCE(SUM(total_price), 0) AS total_cost, COALESCE(SUM(quantity), 0) AS total_quantity").
		Where("org_id = ? AND ingredient_id = ? AND type = ?", orgID, ingredientID, inventory.MovementTypePurchase).
		Scan(&result).Error; err != nil {
		return inventory.PurchaseTotals{}, err
	}
	return inventory.PurchaseTotals{
		TotalCost:     result.TotalCost,
		TotalQuantity: result.TotalQuantity,
	}, nil
}

var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
