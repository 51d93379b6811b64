package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// CostIndex maps an ingredient id to its stored unit cost
// (€/g for bulk ingredients, €/unit for packaging and accessories).
type CostIndex map[uuid.UUID]decimal.Decimal

// ParseFormatGrams converts a sellable format ("50", "100g") to grams
func ParseFormatGrams(format string) (decimal.Decimal, error) {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(format), "g"), "G")
	grams, err := decimal.NewFromString(trimmed)
	if err != nil || !grams.IsPositive() {
		return decimal.Zero, shared.NewDomainError("INVALID_FORMAT",
			fmt.Sprintf("Format %q is not a valid gram amount", format))
	}
	return grams, nil
}

// RecipeCostPerGram computes the cost of one gram of the blend:
// Σ(percentage/100 × ingredient cost per gram). Ingredients missing from the
// index cost zero, matching the behaviour of pricing against an incomplete
// catalog.
func RecipeCostPerGram(composition RecipeComposition, costs CostIndex) decimal.Decimal {
	total := decimal.Zero
	for _, item := range composition {
		unitCost, ok := costs[item.IngredientID]
		if !ok {
			continue
		}
		total = total.Add(item.Percentage.Div(oneHundred).Mul(unitCost))
	}
	return total
}

// RecipeFormatCost computes the material cost of one unit of a sellable
// format of the recipe
func RecipeFormatCost(costPerGram decimal.Decimal, format string) (decimal.Decimal, error) {
	grams, err := ParseFormatGrams(format)
	if err != nil {
		return decimal.Zero, err
	}
	return costPerGram.Mul(grams), nil
}

// RecipeCostResolver resolves a recipe's cost per gram at a pinned
// composition version. Used by PackTotalCost to price nested recipe lines.
type RecipeCostResolver func(recipeID uuid.UUID, version int) (decimal.Decimal, error)

// PackTotalCost computes the total cost of one pack:
// Σ(recipe format cost × quantity) + Σ(packaging unit cost × quantity).
func PackTotalCost(composition PackComposition, recipeCosts RecipeCostResolver, costs CostIndex) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range composition {
		switch item.Kind {
		case PackItemRecipe:
			perGram, err := recipeCosts(*item.RecipeID, item.RecipeVersion)
			if err != nil {
				return decimal.Zero, err
			}
			formatCost, err := RecipeFormatCost(perGram, item.Format)
			if err != nil {
				return decimal.Zero, err
			}
			total = total.Add(formatCost.Mul(item.Quantity))
		case PackItemPackaging:
			unitCost, ok := costs[*item.PackagingID]
			if !ok {
				continue
			}
			total = total.Add(unitCost.Mul(item.Quantity))
		}
	}
	return total, nil
}
