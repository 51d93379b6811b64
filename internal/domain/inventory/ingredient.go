package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// Category is the free-form ingredient category. Two classes are recognized:
// packaging and accessory ingredients are priced per unit; everything else is
// a bulk ingredient priced per gram.
type Category string

const (
	CategoryPackaging Category = "packaging"
	CategoryAccessory Category = "accessory"
)

// IsUnitPriced reports whether ingredients of this category are priced per
// unit (stored as entered) rather than per gram (converted from €/kg).
func (c Category) IsUnitPriced() bool {
	return c == CategoryPackaging || c == CategoryAccessory
}

// gramsPerKilogram is the divisor applied exactly once, at the input
// boundary, when converting a bulk ingredient cost from €/kg to €/g.
var gramsPerKilogram = decimal.NewFromInt(1000)

// NormalizeUnitCost converts an entered cost to the stored cost.
// Bulk ingredients are entered in €/kg and stored in €/g; unit-priced
// ingredients are stored as entered. Callers must never re-apply this
// conversion downstream.
func NormalizeUnitCost(category Category, entered decimal.Decimal) decimal.Decimal {
	if category.IsUnitPriced() {
		return entered
	}
	return entered.Div(gramsPerKilogram)
}

// IngredientStatus represents the lifecycle status of an ingredient
type IngredientStatus string

const (
	IngredientStatusActive     IngredientStatus = "active"
	IngredientStatusArchived   IngredientStatus = "archived"
	IngredientStatusOutOfStock IngredientStatus = "out-of-stock"
	IngredientStatusDeleted    IngredientStatus = "deleted"
)

// IsValid checks if the status is a valid IngredientStatus
func (s IngredientStatus) IsValid() bool {
	switch s {
	case IngredientStatusActive, IngredientStatusArchived, IngredientStatusOutOfStock, IngredientStatusDeleted:
		return true
	}
	return false
}

// Ingredient is the aggregate root for a raw material, packaging item or
// accessory. CurrentStock and WeightedAvgCost are derived from the movement
// ledger: every balance change goes through the ledger service, which is the
// only caller of ApplyDelta and SetWeightedAvgCost.
type Ingredient struct {
	shared.OrgAggregateRoot
	Name            string           `gorm:"type:varchar(120);not null"`
	Category        Category         `gorm:"type:varchar(50);not null;index"`
	Status          IngredientStatus `gorm:"type:varchar(20);not null;default:'active'"`
	CurrentStock    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"` // grams for bulk, units otherwise
	WeightedAvgCost decimal.Decimal  `gorm:"type:decimal(18,6);not null;default:0"` // €/g for bulk, €/unit otherwise
	SupplierID      *uuid.UUID       `gorm:"type:uuid;index"`
	Subtype         string           `gorm:"type:varchar(50)"`   // doypack, sachet, carton...
	Capacity        *decimal.Decimal `gorm:"type:decimal(18,4)"` // declared capacity in grams (packaging)
	AlertThreshold  decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Ingredient) TableName() string {
	return "ingredients"
}

// NewIngredient creates a new ingredient. The entered unit cost is normalized
// at this boundary; the initial stock itself is recorded by the ledger
// service as a purchase movement with source INITIAL.
func NewIngredient(orgID uuid.UUID, name string, category Category) (*Ingredient, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Ingredient name cannot be empty")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Ingredient category cannot be empty")
	}

	ing := &Ingredient{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Name:             name,
		Category:         category,
		Status:           IngredientStatusActive,
		CurrentStock:     decimal.Zero,
		WeightedAvgCost:  decimal.Zero,
		AlertThreshold:   decimal.Zero,
	}

	ing.AddDomainEvent(NewIngredientCreatedEvent(ing))

	return ing, nil
}

// ApplyDelta adjusts the cached stock balance by the movement delta.
// Ledger service use only; direct balance writes are forbidden elsewhere.
func (i *Ingredient) ApplyDelta(delta decimal.Decimal) {
	i.CurrentStock = i.CurrentStock.Add(delta)
	i.Touch()
	i.IncrementVersion()

	if i.Status == IngredientStatusOutOfStock && i.CurrentStock.IsPositive() {
		i.Status = IngredientStatusActive
	} else if i.Status == IngredientStatusActive && !i.CurrentStock.IsPositive() {
		i.Status = IngredientStatusOutOfStock
	}
}

// SetWeightedAvgCost replaces the cached weighted average cost.
// Ledger service use only.
func (i *Ingredient) SetWeightedAvgCost(wac decimal.Decimal) {
	i.WeightedAvgCost = wac
	i.Touch()
}

// Rename changes the ingredient name
func (i *Ingredient) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Ingredient name cannot be empty")
	}
	i.Name = name
	i.Touch()
	return nil
}

// SetSupplier links the ingredient to a supplier (nil unlinks)
func (i *Ingredient) SetSupplier(supplierID *uuid.UUID) {
	i.SupplierID = supplierID
	i.Touch()
}

// SetPackagingProfile sets the subtype and declared capacity used by the
// packaging resolver
func (i *Ingredient) SetPackagingProfile(subtype string, capacity *decimal.Decimal) {
	i.Subtype = subtype
	i.Capacity = capacity
	i.Touch()
}

// SetAlertThreshold sets the low-stock alert threshold
func (i *Ingredient) SetAlertThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Alert threshold cannot be negative")
	}
	i.AlertThreshold = threshold
	i.Touch()
	return nil
}

// Archive marks the ingredient as archived
func (i *Ingredient) Archive() {
	i.Status = IngredientStatusArchived
	i.Touch()
}

// MarkDeleted soft-deletes the ingredient
func (i *Ingredient) MarkDeleted() {
	i.Status = IngredientStatusDeleted
	i.Touch()
}

// IsBelowThreshold returns true if stock has fallen under the alert threshold
func (i *Ingredient) IsBelowThreshold() bool {
	return i.AlertThreshold.IsPositive() && i.CurrentStock.LessThan(i.AlertThreshold)
}

// IsPackaging returns true for packaging-category ingredients
func (i *Ingredient) IsPackaging() bool {
	return i.Category == CategoryPackaging
}
