package catalog

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
)

func seedPackaging(t *testing.T, repo *memIngredientRepo, orgID uuid.UUID, name, subtype string, capacity *float64) *inventory.Ingredient {
	t.Helper()
	ing, err := inventory.NewIngredient(orgID, name, inventory.CategoryPackaging)
	require.NoError(t, err)
	var declared *decimal.Decimal
	if capacity != nil {
		c := decimal.NewFromFloat(*capacity)
		declared = &c
	}
	ing.SetPackagingProfile(subtype, declared)
	require.NoError(t, repo.Save(context.Background(), ing))
	return ing
}

func f(v float64) *float64 { return &v }

func TestPackagingResolver_ExactCapacityMatch(t *testing.T) {
	ingredients := newMemIngredientRepo()
	orgID := uuid.New()
	resolver := NewPackagingResolver(ingredients)

	seedPackaging(t, ingredients, orgID, "Doypack kraft 50", "doypack", f(50))
	want := seedPackaging(t, ingredients, orgID, "Doypack kraft 100", "doypack", f(100))

	got, err := resolver.FindPackaging(context.Background(), orgID, "100", "doypack")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
}

func TestPackagingResolver_NameFallback(t *testing.T) {
	ingredients := newMemIngredientRepo()
	orgID := uuid.New()
	resolver := NewPackagingResolver(ingredients)

	// No declared capacity anywhere; the format value must match by name.
	want := seedPackaging(t, ingredients, orgID, "Sachet kraft 250g", "sachet", nil)
	seedPackaging(t, ingredients, orgID, "Sachet kraft 500g", "sachet", nil)

	got, err := resolver.FindPackaging(context.Background(), orgID, "250", "sachet")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
}

func TestPackagingResolver_KindBySubtypeThenName(t *testing.T) {
	ingredients := newMemIngredientRepo()
	orgID := uuid.New()
	resolver := NewPackagingResolver(ingredients)

	seedPackaging(t, ingredients, orgID, "Doypack kraft 100", "doypack", f(100))
	// No subtype; kind matched through the name heuristic.
	want := seedPackaging(t, ingredients, orgID, "Carton expédition 100", "", f(100))

	got, err := resolver.FindPackaging(context.Background(), orgID, "100", "carton")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
}

func TestPackagingResolver_NoMatchIsNilNotError(t *testing.T) {
	ingredients := newMemIngredientRepo()
	orgID := uuid.New()
	resolver := NewPackagingResolver(ingredients)

	seedPackaging(t, ingredients, orgID, "Doypack kraft 50", "doypack", f(50))

	got, err := resolver.FindPackaging(context.Background(), orgID, "2000", "doypack")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPackagingResolver_TieBrokenByLowestID(t *testing.T) {
	ingredients := newMemIngredientRepo()
	orgID := uuid.New()
	resolver := NewPackagingResolver(ingredients)

	a := seedPackaging(t, ingredients, orgID, "Doypack kraft 100 (lot A)", "doypack", f(100))
	b := seedPackaging(t, ingredients, orgID, "Doypack kraft 100 (lot B)", "doypack", f(100))

	want := a
	if bytes.Compare(b.ID[:], a.ID[:]) < 0 {
		want = b
	}

	for i := 0; i < 5; i++ {
		got, err := resolver.FindPackaging(context.Background(), orgID, "100", "doypack")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want.ID, got.ID, "same winner on every resolution")
	}
}
