package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUnitCost_BulkConvertsPerKilogram(t *testing.T) {
	// 10 €/kg entered -> 0.01 €/g stored
	stored := NormalizeUnitCost("tea", decimal.NewFromInt(10))
	assert.True(t, stored.Equal(decimal.NewFromFloat(0.01)), "got %s", stored)
}

func TestNormalizeUnitCost_UnitPricedStoredAsEntered(t *testing.T) {
	for _, cat := range []Category{CategoryPackaging, CategoryAccessory} {
		stored := NormalizeUnitCost(cat, decimal.NewFromFloat(0.35))
		assert.True(t, stored.Equal(decimal.NewFromFloat(0.35)))
	}
}

func TestNormalizeUnitCost_NoDoubleConversion(t *testing.T) {
	// Applying the boundary conversion once and reading it back must not
	// shrink the value again.
	stored := NormalizeUnitCost("herbs", decimal.NewFromInt(24))
	assert.Equal(t, "0.024", stored.String())
}

func TestNewIngredient(t *testing.T) {
	orgID := uuid.New()
	ing, err := NewIngredient(orgID, "Verveine", "plante")
	require.NoError(t, err)

	assert.Equal(t, IngredientStatusActive, ing.Status)
	assert.True(t, ing.CurrentStock.IsZero())
	assert.True(t, ing.WeightedAvgCost.IsZero())
	assert.Len(t, ing.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeIngredientCreated, ing.GetDomainEvents()[0].EventType())
}

func TestNewIngredient_Validation(t *testing.T) {
	_, err := NewIngredient(uuid.New(), "", "plante")
	assert.Error(t, err)

	_, err = NewIngredient(uuid.New(), "Verveine", "")
	assert.Error(t, err)
}

func TestIngredient_ApplyDelta(t *testing.T) {
	ing, err := NewIngredient(uuid.New(), "Verveine", "plante")
	require.NoError(t, err)

	ing.ApplyDelta(decimal.NewFromInt(1000))
	assert.Equal(t, "1000", ing.CurrentStock.String())

	ing.ApplyDelta(decimal.NewFromInt(-100))
	assert.Equal(t, "900", ing.CurrentStock.String())
}

func TestIngredient_ApplyDelta_OutOfStockTransitions(t *testing.T) {
	ing, err := NewIngredient(uuid.New(), "Verveine", "plante")
	require.NoError(t, err)

	ing.ApplyDelta(decimal.NewFromInt(50))
	assert.Equal(t, IngredientStatusActive, ing.Status)

	ing.ApplyDelta(decimal.NewFromInt(-50))
	assert.Equal(t, IngredientStatusOutOfStock, ing.Status)

	ing.ApplyDelta(decimal.NewFromInt(25))
	assert.Equal(t, IngredientStatusActive, ing.Status)
}

func TestIngredient_IsBelowThreshold(t *testing.T) {
	ing, err := NewIngredient(uuid.New(), "Verveine", "plante")
	require.NoError(t, err)

	// Threshold zero means alerts are disabled
	assert.False(t, ing.IsBelowThreshold())

	require.NoError(t, ing.SetAlertThreshold(decimal.NewFromInt(200)))
	ing.ApplyDelta(decimal.NewFromInt(100))
	assert.True(t, ing.IsBelowThreshold())

	ing.ApplyDelta(decimal.NewFromInt(150))
	assert.False(t, ing.IsBelowThreshold())
}

func TestIngredient_SetAlertThreshold_Negative(t *testing.T) {
	ing, err := NewIngredient(uuid.New(), "Verveine", "plante")
	require.NoError(t, err)
	assert.Error(t, ing.SetAlertThreshold(decimal.NewFromInt(-1)))
}
