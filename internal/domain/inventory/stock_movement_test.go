package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockMovement(t *testing.T) {
	orgID := uuid.New()
	ingredientID := uuid.New()

	m, err := NewStockMovement(orgID, ingredientID, MovementTypePurchase, EntityClassIngredient, MovementSourceManual, decimal.NewFromInt(500), "restock")
	require.NoError(t, err)

	assert.Equal(t, ingredientID, m.IngredientID)
	assert.Equal(t, "500", m.Quantity.String())
	assert.True(t, m.IsPurchase())
	assert.False(t, m.OccurredAt.IsZero())
}

func TestNewStockMovement_Validation(t *testing.T) {
	orgID := uuid.New()
	ingredientID := uuid.New()

	tests := []struct {
		name     string
		ingID    uuid.UUID
		mType    MovementType
		class    EntityClass
		source   MovementSource
		quantity decimal.Decimal
	}{
		{"nil ingredient", uuid.Nil, MovementTypePurchase, EntityClassIngredient, MovementSourceManual, decimal.NewFromInt(1)},
		{"unknown type", ingredientID, "TRANSFER", EntityClassIngredient, MovementSourceManual, decimal.NewFromInt(1)},
		{"unknown class", ingredientID, MovementTypePurchase, "BUNDLE", MovementSourceManual, decimal.NewFromInt(1)},
		{"unknown source", ingredientID, MovementTypePurchase, EntityClassIngredient, "WEBHOOK", decimal.NewFromInt(1)},
		{"zero quantity", ingredientID, MovementTypePurchase, EntityClassIngredient, MovementSourceManual, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStockMovement(orgID, tt.ingID, tt.mType, tt.class, tt.source, tt.quantity, "")
			assert.Error(t, err)
		})
	}
}

func TestStockMovement_WithPricing(t *testing.T) {
	m, err := NewStockMovement(uuid.New(), uuid.New(), MovementTypePurchase, EntityClassIngredient, MovementSourceInitial, decimal.NewFromInt(1000), "initial stock")
	require.NoError(t, err)

	m.WithPricing(decimal.NewFromFloat(0.01))
	assert.Equal(t, "10", m.TotalPrice.String())
}

func TestStockMovement_WithPricing_NegativeQuantity(t *testing.T) {
	// Total price is derived from the absolute quantity, so sale movements
	// still carry a positive total.
	m, err := NewStockMovement(uuid.New(), uuid.New(), MovementTypeSale, EntityClassIngredient, MovementSourceOrder, decimal.NewFromInt(-100), "sold")
	require.NoError(t, err)

	m.WithPricing(decimal.NewFromFloat(0.02))
	assert.Equal(t, "2", m.TotalPrice.String())
}

func TestPurchaseTotals_WAC(t *testing.T) {
	totals := PurchaseTotals{
		TotalCost:     decimal.NewFromInt(25), // 10€ + 15€
		TotalQuantity: decimal.NewFromInt(1500),
	}
	wac := totals.WAC()
	assert.Equal(t, "0.0166666666666667", wac.Round(16).String())
}

func TestPurchaseTotals_WAC_NoPurchases(t *testing.T) {
	assert.True(t, PurchaseTotals{}.WAC().IsZero())
}
