package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeItem(recipeID uuid.UUID, version int, format string, qty int64) PackItem {
	return PackItem{Kind: PackItemRecipe, RecipeID: &recipeID, RecipeVersion: version, Format: format, Quantity: decimal.NewFromInt(qty)}
}

func packagingItem(packagingID uuid.UUID, qty int64) PackItem {
	return PackItem{Kind: PackItemPackaging, PackagingID: &packagingID, Quantity: decimal.NewFromInt(qty)}
}

func TestPackItem_Validate(t *testing.T) {
	rid := uuid.New()
	pid := uuid.New()

	assert.NoError(t, recipeItem(rid, 1, "50", 2).Validate())
	assert.NoError(t, packagingItem(pid, 1).Validate())

	tests := []struct {
		name string
		item PackItem
	}{
		{"unknown kind", PackItem{Kind: "sticker", Quantity: decimal.NewFromInt(1)}},
		{"recipe without id", PackItem{Kind: PackItemRecipe, Format: "50", RecipeVersion: 1, Quantity: decimal.NewFromInt(1)}},
		{"recipe without format", PackItem{Kind: PackItemRecipe, RecipeID: &rid, RecipeVersion: 1, Quantity: decimal.NewFromInt(1)}},
		{"recipe without version", PackItem{Kind: PackItemRecipe, RecipeID: &rid, Format: "50", Quantity: decimal.NewFromInt(1)}},
		{"packaging without id", PackItem{Kind: PackItemPackaging, Quantity: decimal.NewFromInt(1)}},
		{"zero quantity", recipeItem(rid, 1, "50", 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.item.Validate())
		})
	}
}

func TestNewPack(t *testing.T) {
	comp := PackComposition{recipeItem(uuid.New(), 1, "50", 2), packagingItem(uuid.New(), 1)}
	p, err := NewPack(uuid.New(), "Coffret Découverte", comp)
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, 1, p.CompositionVersion)
}

func TestNewPack_EmptyComposition(t *testing.T) {
	_, err := NewPack(uuid.New(), "Coffret Vide", PackComposition{})
	assert.Error(t, err)
}

func TestPack_SnapshotIfActive(t *testing.T) {
	comp := PackComposition{recipeItem(uuid.New(), 3, "100", 1)}
	p, err := NewPack(uuid.New(), "Coffret Découverte", comp)
	require.NoError(t, err)

	// Draft edits rewrite in place.
	assert.Nil(t, p.SnapshotIfActive())

	require.NoError(t, p.TransitionTo(StatusActive))
	p.SetPrice(decimal.NewFromFloat(24.90))

	snap := p.SnapshotIfActive()
	require.NotNil(t, snap)
	assert.Equal(t, 1, snap.VersionNumber)
	assert.Equal(t, 2, p.CompositionVersion)
	assert.Equal(t, comp, snap.Composition)
	assert.True(t, snap.Price.Equal(decimal.NewFromFloat(24.90)))

	// Pinned recipe version survives in the snapshot.
	assert.Equal(t, 3, snap.Composition[0].RecipeVersion)
}

func TestPack_VersionFromHead(t *testing.T) {
	comp := PackComposition{recipeItem(uuid.New(), 1, "50", 2)}
	p, err := NewPack(uuid.New(), "Coffret Découverte", comp)
	require.NoError(t, err)

	view := p.VersionFromHead()
	assert.Equal(t, 1, view.VersionNumber)
	assert.Equal(t, p.Composition, view.Composition)
}
