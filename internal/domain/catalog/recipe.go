package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// compositionTolerance is the accepted deviation from 100 for the sum of
// composition percentages.
var compositionTolerance = decimal.NewFromFloat(0.1)

var oneHundred = decimal.NewFromInt(100)

// RecipeItem is one ingredient line of a recipe composition
type RecipeItem struct {
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// RecipeComposition is the full percentage blend of a recipe
type RecipeComposition []RecipeItem

// Validate checks that the percentages sum to 100 within tolerance
func (c RecipeComposition) Validate() error {
	if len(c) == 0 {
		return shared.ErrInvalidComposition
	}
	sum := decimal.Zero
	for _, item := range c {
		if item.IngredientID == uuid.Nil {
			return shared.NewDomainError("INVALID_COMPOSITION", "Composition item has no ingredient")
		}
		if !item.Percentage.IsPositive() {
			return shared.NewDomainError("INVALID_COMPOSITION", "Composition percentages must be positive")
		}
		sum = sum.Add(item.Percentage)
	}
	if sum.Sub(oneHundred).Abs().GreaterThan(compositionTolerance) {
		return shared.NewDomainError("INVALID_COMPOSITION",
			fmt.Sprintf("Composition percentages sum to %s, expected 100", sum.String()))
	}
	return nil
}

// PriceTable maps a sellable format (grams, e.g. "50" or "100g") to a sale price
type PriceTable map[string]decimal.Decimal

// Recipe is the mutable head of a blend. Its immutable history lives in
// RecipeVersion records; CompositionVersion is the head's version counter.
type Recipe struct {
	shared.OrgAggregateRoot
	Name                string            `gorm:"type:varchar(120);not null"`
	Status              ComponentStatus   `gorm:"type:varchar(20);not null;default:'draft'"`
	Composition         RecipeComposition `gorm:"serializer:json"`
	TotalIngredientCost decimal.Decimal   `gorm:"type:decimal(18,6);not null;default:0"` // €/g
	Prices              PriceTable        `gorm:"serializer:json"`
	CompositionVersion  int               `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// NewRecipe creates a new draft recipe
func NewRecipe(orgID uuid.UUID, name string, composition RecipeComposition) (*Recipe, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Recipe name cannot be empty")
	}
	if err := composition.Validate(); err != nil {
		return nil, err
	}

	return &Recipe{
		OrgAggregateRoot:    shared.NewOrgAggregateRoot(orgID),
		Name:                name,
		Status:              StatusDraft,
		Composition:         composition,
		TotalIngredientCost: decimal.Zero,
		Prices:              make(PriceTable),
		CompositionVersion:  1,
	}, nil
}

// SnapshotIfActive captures the pre-edit head into an immutable version
// record when the recipe is ACTIVE, then bumps the head's version counter.
// Returns nil for draft (and archived/deprecated) recipes, whose edits never
// snapshot. Callers must invoke this before applying any composition or
// pricing edit.
func (r *Recipe) SnapshotIfActive() *RecipeVersion {
	if !snapshotsOnEdit(r.Status) {
		return nil
	}
	version := newRecipeVersion(r)
	r.CompositionVersion++
	return version
}

// SetComposition replaces the composition after validation
func (r *Recipe) SetComposition(composition RecipeComposition) error {
	if err := composition.Validate(); err != nil {
		return err
	}
	r.Composition = composition
	r.Touch()
	return nil
}

// SetPrices replaces the recipe price table
func (r *Recipe) SetPrices(prices PriceTable) {
	r.Prices = prices
	r.Touch()
}

// SetTotalIngredientCost stores the derived cost per gram
func (r *Recipe) SetTotalIngredientCost(costPerGram decimal.Decimal) {
	r.TotalIngredientCost = costPerGram
	r.Touch()
}

// Rename changes the recipe name
func (r *Recipe) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Recipe name cannot be empty")
	}
	r.Name = name
	r.Touch()
	return nil
}

// TransitionTo moves the recipe to the target status
func (r *Recipe) TransitionTo(target ComponentStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown component status")
	}
	if r.Status == target {
		return nil
	}
	if !r.Status.CanTransitionTo(target) {
		return shared.NewDomainError("ILLEGAL_TRANSITION",
			fmt.Sprintf("Cannot move recipe from %s to %s", r.Status, target))
	}
	r.Status = target
	r.Touch()
	return nil
}

// PriceForFormat returns the sale price for a sellable format
func (r *Recipe) PriceForFormat(format string) (decimal.Decimal, bool) {
	p, ok := r.Prices[format]
	return p, ok
}

// RecipeVersion is an immutable snapshot of a recipe head, keyed by
// (RecipeID, VersionNumber). Never mutated after creation.
type RecipeVersion struct {
	shared.BaseEntity
	OrgID               uuid.UUID         `gorm:"type:uuid;not null;index"`
	RecipeID            uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_version,priority:1"`
	VersionNumber       int               `gorm:"not null;uniqueIndex:idx_recipe_version,priority:2"`
	Composition         RecipeComposition `gorm:"serializer:json"`
	TotalIngredientCost decimal.Decimal   `gorm:"type:decimal(18,6);not null;default:0"`
	Prices              PriceTable        `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (RecipeVersion) TableName() string {
	return "recipe_versions"
}

func newRecipeVersion(r *Recipe) *RecipeVersion {
	return &RecipeVersion{
		BaseEntity:          shared.NewBaseEntity(),
		OrgID:               r.OrgID,
		RecipeID:            r.ID,
		VersionNumber:       r.CompositionVersion,
		Composition:         append(RecipeComposition(nil), r.Composition...),
		TotalIngredientCost: r.TotalIngredientCost,
		Prices:              clonePrices(r.Prices),
	}
}

// VersionFromHead synthesizes a version view from the live head. Used when a
// caller asks for the head's current version number, which has no history
// record yet; callers must not special-case this themselves.
func (r *Recipe) VersionFromHead() *RecipeVersion {
	return newRecipeVersion(r)
}

func clonePrices(p PriceTable) PriceTable {
	out := make(PriceTable, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
