package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// IngredientRepository defines persistence operations for ingredients
type IngredientRepository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Ingredient, error)
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Ingredient, error)
	FindByCategory(ctx context.Context, orgID uuid.UUID, category Category) ([]Ingredient, error)
	FindBelowThreshold(ctx context.Context, orgID uuid.UUID) ([]Ingredient, error)
	CountBySupplier(ctx context.Context, orgID, supplierID uuid.UUID) (int64, error)
	Count(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, ingredient *Ingredient) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// PurchaseTotals aggregates purchase movements for the WAC derivation:
// WAC = TotalCost / TotalQuantity, 0 when no purchases exist.
type PurchaseTotals struct {
	TotalCost     decimal.Decimal
	TotalQuantity decimal.Decimal
}

// WAC returns the weighted average cost, zero when no purchases were made
func (p PurchaseTotals) WAC() decimal.Decimal {
	if !p.TotalQuantity.IsPositive() {
		return decimal.Zero
	}
	return p.TotalCost.Div(p.TotalQuantity)
}

// StockMovementRepository is the append-only store of the movement ledger.
// There is deliberately no update or delete: corrections are appended as
// compensating movements.
type StockMovementRepository interface {
	Append(ctx context.Context, movement *StockMovement) error
	FindByIngredient(ctx context.Context, orgID, ingredientID uuid.UUID) ([]StockMovement, error)
	FindBySourceRef(ctx context.Context, orgID uuid.UUID, source MovementSource, sourceRef string) ([]StockMovement, error)
	SumDeltas(ctx context.Context, orgID, ingredientID uuid.UUID) (decimal.Decimal, error)
	SumPurchases(ctx context.Context, orgID, ingredientID uuid.UUID) (PurchaseTotals, error)
}

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}
