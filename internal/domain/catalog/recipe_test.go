package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func validComposition() RecipeComposition {
	return RecipeComposition{
		{IngredientID: uuid.New(), Percentage: pct(60)},
		{IngredientID: uuid.New(), Percentage: pct(40)},
	}
}

func TestRecipeComposition_Validate(t *testing.T) {
	tests := []struct {
		name        string
		percentages []float64
		wantErr     bool
	}{
		{"exact hundred", []float64{60, 40}, false},
		{"within tolerance above", []float64{60, 40.05}, false},
		{"within tolerance below", []float64{60, 39.95}, false},
		{"sum ninety", []float64{50, 40}, true},
		{"sum hundred ten", []float64{60, 50}, true},
		{"just outside tolerance", []float64{60, 40.2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := make(RecipeComposition, 0, len(tt.percentages))
			for _, p := range tt.percentages {
				comp = append(comp, RecipeItem{IngredientID: uuid.New(), Percentage: pct(p)})
			}
			err := comp.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecipeComposition_Validate_Empty(t *testing.T) {
	assert.Error(t, RecipeComposition{}.Validate())
}

func TestRecipeComposition_Validate_BadItems(t *testing.T) {
	comp := RecipeComposition{{IngredientID: uuid.Nil, Percentage: pct(100)}}
	assert.Error(t, comp.Validate())

	comp = RecipeComposition{
		{IngredientID: uuid.New(), Percentage: pct(110)},
		{IngredientID: uuid.New(), Percentage: pct(-10)},
	}
	assert.Error(t, comp.Validate())
}

func TestNewRecipe(t *testing.T) {
	r, err := NewRecipe(uuid.New(), "Tisane du Soir", validComposition())
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, r.Status)
	assert.Equal(t, 1, r.CompositionVersion)
}

func TestRecipe_SnapshotIfActive_DraftNeverSnapshots(t *testing.T) {
	r, err := NewRecipe(uuid.New(), "Tisane du Soir", validComposition())
	require.NoError(t, err)

	assert.Nil(t, r.SnapshotIfActive())
	assert.Equal(t, 1, r.CompositionVersion)
}

func TestRecipe_SnapshotIfActive_CapturesPreEditState(t *testing.T) {
	original := validComposition()
	r, err := NewRecipe(uuid.New(), "Tisane du Soir", original)
	require.NoError(t, err)
	require.NoError(t, r.TransitionTo(StatusActive))
	r.SetPrices(PriceTable{"50": decimal.NewFromFloat(8.50)})

	snap := r.SnapshotIfActive()
	require.NotNil(t, snap)

	// Snapshot carries the pre-edit version number; head increments.
	assert.Equal(t, 1, snap.VersionNumber)
	assert.Equal(t, 2, r.CompositionVersion)
	assert.Equal(t, r.ID, snap.RecipeID)
	assert.Equal(t, original, snap.Composition)
	assert.True(t, snap.Prices["50"].Equal(decimal.NewFromFloat(8.50)))

	// Editing the head after the snapshot leaves the snapshot untouched.
	newComp := validComposition()
	require.NoError(t, r.SetComposition(newComp))
	assert.Equal(t, original, snap.Composition)
}

func TestRecipe_SnapshotIfActive_Repeated(t *testing.T) {
	r, err := NewRecipe(uuid.New(), "Tisane du Soir", validComposition())
	require.NoError(t, err)
	require.NoError(t, r.TransitionTo(StatusActive))

	first := r.SnapshotIfActive()
	second := r.SnapshotIfActive()
	require.NotNil(t, first)
	require.NotNil(t, second)

	assert.Equal(t, 1, first.VersionNumber)
	assert.Equal(t, 2, second.VersionNumber)
	assert.Equal(t, 3, r.CompositionVersion)
}

func TestRecipe_VersionFromHead(t *testing.T) {
	r, err := NewRecipe(uuid.New(), "Tisane du Soir", validComposition())
	require.NoError(t, err)
	require.NoError(t, r.TransitionTo(StatusActive))
	_ = r.SnapshotIfActive()

	view := r.VersionFromHead()
	assert.Equal(t, r.CompositionVersion, view.VersionNumber)
	assert.Equal(t, r.Composition, view.Composition)
}

func TestRecipe_TransitionTo(t *testing.T) {
	r, err := NewRecipe(uuid.New(), "Tisane du Soir", validComposition())
	require.NoError(t, err)

	require.NoError(t, r.TransitionTo(StatusActive))
	require.NoError(t, r.TransitionTo(StatusDeprecated))

	// Deprecated is terminal
	assert.Error(t, r.TransitionTo(StatusActive))
}

func TestRecipe_SetComposition_RejectsInvalidBeforeWrite(t *testing.T) {
	r, err := NewRecipe(uuid.New(), "Tisane du Soir", validComposition())
	require.NoError(t, err)
	before := r.Composition

	bad := RecipeComposition{{IngredientID: uuid.New(), Percentage: pct(90)}}
	assert.Error(t, r.SetComposition(bad))
	assert.Equal(t, before, r.Composition)
}
