package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormatGrams(t *testing.T) {
	g, err := ParseFormatGrams("50")
	require.NoError(t, err)
	assert.True(t, g.Equal(decimal.NewFromInt(50)))

	g, err = ParseFormatGrams("100g")
	require.NoError(t, err)
	assert.True(t, g.Equal(decimal.NewFromInt(100)))

	_, err = ParseFormatGrams("")
	assert.Error(t, err)
	_, err = ParseFormatGrams("sachet")
	assert.Error(t, err)
	_, err = ParseFormatGrams("-50")
	assert.Error(t, err)
}

func TestRecipeCostPerGram(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	costs := CostIndex{
		a: decimal.NewFromFloat(0.02), // €/g
		b: decimal.NewFromFloat(0.05),
	}
	comp := RecipeComposition{
		{IngredientID: a, Percentage: decimal.NewFromInt(60)},
		{IngredientID: b, Percentage: decimal.NewFromInt(40)},
	}

	// 0.6*0.02 + 0.4*0.05 = 0.032
	got := RecipeCostPerGram(comp, costs)
	assert.True(t, got.Equal(decimal.NewFromFloat(0.032)), got.String())
}

func TestRecipeCostPerGram_MissingIngredientCostsZero(t *testing.T) {
	a := uuid.New()
	comp := RecipeComposition{
		{IngredientID: a, Percentage: decimal.NewFromInt(50)},
		{IngredientID: uuid.New(), Percentage: decimal.NewFromInt(50)},
	}
	costs := CostIndex{a: decimal.NewFromFloat(0.04)}

	got := RecipeCostPerGram(comp, costs)
	assert.True(t, got.Equal(decimal.NewFromFloat(0.02)), got.String())
}

func TestRecipeFormatCost(t *testing.T) {
	costPerGram := decimal.NewFromFloat(0.032)
	got, err := RecipeFormatCost(costPerGram, "50")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromFloat(1.6)), got.String())
}

func TestPackTotalCost(t *testing.T) {
	rid := uuid.New()
	pid := uuid.New()
	comp := PackComposition{
		{Kind: PackItemRecipe, RecipeID: &rid, RecipeVersion: 1, Format: "50", Quantity: decimal.NewFromInt(2)},
		{Kind: PackItemPackaging, PackagingID: &pid, Quantity: decimal.NewFromInt(3)},
	}
	recipeCosts := func(recipeID uuid.UUID, version int) (decimal.Decimal, error) {
		require.Equal(t, rid, recipeID)
		require.Equal(t, 1, version)
		return decimal.NewFromFloat(0.02), nil // €/g
	}
	costs := CostIndex{pid: decimal.NewFromFloat(0.35)}

	// 2 * 50g * 0.02 + 3 * 0.35 = 2.00 + 1.05 = 3.05
	got, err := PackTotalCost(comp, recipeCosts, costs)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromFloat(3.05)), got.String())
}
