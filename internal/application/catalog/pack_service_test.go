package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

type packFixture struct {
	packs       *memPackRepo
	versions    *memPackVersionRepo
	ingredients *memIngredientRepo
	recipes     *RecipeService
	svc         *PackService
	orgID       uuid.UUID
}

func newPackFixture(t *testing.T) *packFixture {
	t.Helper()
	recipes := newMemRecipeRepo()
	recipeVersions := &memRecipeVersionRepo{}
	ingredients := newMemIngredientRepo()
	recipeSvc := NewRecipeService(recipes, recipeVersions, ingredients)
	packs := newMemPackRepo()
	versions := &memPackVersionRepo{}
	return &packFixture{
		packs:       packs,
		versions:    versions,
		ingredients: ingredients,
		recipes:     recipeSvc,
		svc:         NewPackService(packs, versions, recipes, recipeSvc, ingredients),
		orgID:       uuid.New(),
	}
}

func (fx *packFixture) seedActiveRecipe(t *testing.T, costPerGram float64) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	ing, err := inventory.NewIngredient(fx.orgID, "Verveine bio", "plante")
	require.NoError(t, err)
	ing.SetWeightedAvgCost(decimal.NewFromFloat(costPerGram))
	require.NoError(t, fx.ingredients.Save(ctx, ing))

	created, err := fx.recipes.CreateRecipe(ctx, fx.orgID, CreateRecipeRequest{
		Name: "Tisane du Soir",
		Composition: []RecipeItemRequest{
			{IngredientID: ing.ID, Percentage: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)
	active := "active"
	_, err = fx.recipes.UpdateRecipe(ctx, fx.orgID, created.ID, UpdateRecipeRequest{Status: &active})
	require.NoError(t, err)
	return created.ID
}

func (fx *packFixture) seedPackaging(t *testing.T, name string, unitCost float64) uuid.UUID {
	t.Helper()
	ing, err := inventory.NewIngredient(fx.orgID, name, inventory.CategoryPackaging)
	require.NoError(t, err)
	ing.SetWeightedAvgCost(decimal.NewFromFloat(unitCost))
	require.NoError(t, fx.ingredients.Save(context.Background(), ing))
	return ing.ID
}

func TestPackService_CreatePack_PinsRecipeVersionAndDerivesCost(t *testing.T) {
	fx := newPackFixture(t)
	ctx := context.Background()
	recipeID := fx.seedActiveRecipe(t, 0.02)
	packagingID := fx.seedPackaging(t, "Coffret bois", 1.50)

	resp, err := fx.svc.CreatePack(ctx, fx.orgID, CreatePackRequest{
		Name: "Coffret Découverte",
		Composition: []PackItemRequest{
			{Kind: "recipe", RecipeID: &recipeID, Format: "50", Quantity: decimal.NewFromInt(2)},
			{Kind: "packaging", PackagingID: &packagingID, Quantity: decimal.NewFromInt(1)},
		},
		Price: decimal.NewFromFloat(24.90),
	})
	require.NoError(t, err)

	require.Len(t, resp.Composition, 2)
	assert.Equal(t, 1, resp.Composition[0].RecipeVersion, "recipe line pinned to current head version")

	// 2 × 50g × 0.02 + 1 × 1.50 = 3.50
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromFloat(3.50)), resp.TotalCost.String())
}

func TestPackService_CreatePack_UnknownRecipeRejected(t *testing.T) {
	fx := newPackFixture(t)
	missing := uuid.New()

	_, err := fx.svc.CreatePack(context.Background(), fx.orgID, CreatePackRequest{
		Name: "Coffret Fantôme",
		Composition: []PackItemRequest{
			{Kind: "recipe", RecipeID: &missing, Format: "50", Quantity: decimal.NewFromInt(1)},
		},
		Price: decimal.NewFromFloat(19.90),
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPackService_UpdatePack_ActiveEditSnapshots(t *testing.T) {
	fx := newPackFixture(t)
	ctx := context.Background()
	recipeID := fx.seedActiveRecipe(t, 0.02)

	created, err := fx.svc.CreatePack(ctx, fx.orgID, CreatePackRequest{
		Name: "Coffret Découverte",
		Composition: []PackItemRequest{
			{Kind: "recipe", RecipeID: &recipeID, Format: "50", Quantity: decimal.NewFromInt(1)},
		},
		Price: decimal.NewFromFloat(12.00),
	})
	require.NoError(t, err)

	active := "active"
	_, err = fx.svc.UpdatePack(ctx, fx.orgID, created.ID, UpdatePackRequest{Status: &active})
	require.NoError(t, err)
	assert.Empty(t, fx.versions.versions)

	newPrice := decimal.NewFromFloat(14.00)
	updated, err := fx.svc.UpdatePack(ctx, fx.orgID, created.ID, UpdatePackRequest{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Version)
	require.Len(t, fx.versions.versions, 1)
	assert.Equal(t, 1, fx.versions.versions[0].VersionNumber)
	assert.True(t, fx.versions.versions[0].Price.Equal(decimal.NewFromFloat(12.00)), "snapshot keeps the pre-edit price")
}

func TestPackService_GetVersion_HeadSynthesis(t *testing.T) {
	fx := newPackFixture(t)
	ctx := context.Background()
	recipeID := fx.seedActiveRecipe(t, 0.02)

	created, err := fx.svc.CreatePack(ctx, fx.orgID, CreatePackRequest{
		Name: "Coffret Découverte",
		Composition: []PackItemRequest{
			{Kind: "recipe", RecipeID: &recipeID, Format: "50", Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	v1, err := fx.svc.GetVersion(ctx, fx.orgID, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v1.VersionNumber)
	assert.Len(t, v1.Composition, 1)
}

func TestPackService_RecipeEditDoesNotMovePinnedVersion(t *testing.T) {
	fx := newPackFixture(t)
	ctx := context.Background()
	recipeID := fx.seedActiveRecipe(t, 0.02)

	created, err := fx.svc.CreatePack(ctx, fx.orgID, CreatePackRequest{
		Name: "Coffret Découverte",
		Composition: []PackItemRequest{
			{Kind: "recipe", RecipeID: &recipeID, Format: "50", Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	// Edit the active recipe: its head moves to version 2.
	other, err := inventory.NewIngredient(fx.orgID, "Tilleul", "plante")
	require.NoError(t, err)
	other.SetWeightedAvgCost(decimal.NewFromFloat(0.05))
	require.NoError(t, fx.ingredients.Save(ctx, other))
	_, err = fx.recipes.UpdateRecipe(ctx, fx.orgID, recipeID, UpdateRecipeRequest{
		Prices: map[string]decimal.Decimal{"50": decimal.NewFromFloat(9.00)},
	})
	require.NoError(t, err)

	head, err := fx.recipes.GetRecipe(ctx, fx.orgID, recipeID)
	require.NoError(t, err)
	assert.Equal(t, 2, head.Version)

	// The pack still references version 1.
	pack, err := fx.svc.GetPack(ctx, fx.orgID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pack.Composition[0].RecipeVersion)
}
