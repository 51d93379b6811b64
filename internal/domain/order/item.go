package order

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// ItemKind is the tagged discriminator of an order line. Deduction,
// reversal and pricing all match on it exhaustively; unknown tags are
// rejected at construction rather than tolerated downstream.
type ItemKind string

const (
	ItemRecipe    ItemKind = "RECIPE"
	ItemPack      ItemKind = "PACK"
	ItemAccessory ItemKind = "ACCESSORY"
)

// IsValid checks if the kind is a known one
func (k ItemKind) IsValid() bool {
	switch k {
	case ItemRecipe, ItemPack, ItemAccessory:
		return true
	}
	return false
}

// Item is one order line. Everything on it is a snapshot frozen when the
// line was added or last recalculated: the composition version, the unit
// price and the unit cost split. Later edits to the referenced recipe or
// pack never reach back into an existing line.
type Item struct {
	ID       uuid.UUID `json:"id"`
	Kind     ItemKind  `json:"kind"`
	TargetID uuid.UUID `json:"target_id"`
	Name     string    `json:"name"`
	Format   string    `json:"format,omitempty"` // recipe lines only

	Quantity      decimal.Decimal `json:"quantity"`
	VersionNumber int             `json:"version_number,omitempty"` // recipe/pack lines

	UnitPrice         decimal.Decimal `json:"unit_price"`
	UnitMaterialCost  decimal.Decimal `json:"unit_material_cost"`
	UnitPackagingCost decimal.Decimal `json:"unit_packaging_cost"`
}

// NewItem builds a validated order line with a fresh id
func NewItem(kind ItemKind, targetID uuid.UUID, name, format string, quantity decimal.Decimal) (Item, error) {
	item := Item{
		ID:                uuid.New(),
		Kind:              kind,
		TargetID:          targetID,
		Name:              name,
		Format:            format,
		Quantity:          quantity,
		UnitPrice:         decimal.Zero,
		UnitMaterialCost:  decimal.Zero,
		UnitPackagingCost: decimal.Zero,
	}
	if err := item.Validate(); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Validate checks the line's invariants
func (i Item) Validate() error {
	if !i.Kind.IsValid() {
		return shared.NewDomainError("INVALID_ITEM",
			fmt.Sprintf("Unknown order item kind %q", i.Kind))
	}
	if i.TargetID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Order item has no target")
	}
	if !i.Quantity.IsPositive() {
		return shared.NewDomainError("INVALID_ITEM", "Order item quantity must be positive")
	}
	if i.Kind == ItemRecipe && i.Format == "" {
		return shared.NewDomainError("INVALID_ITEM", "Recipe order item has no format")
	}
	return nil
}

// Freeze stamps the pricing snapshot onto the line
func (i *Item) Freeze(version int, unitPrice, unitMaterialCost, unitPackagingCost decimal.Decimal) {
	i.VersionNumber = version
	i.UnitPrice = unitPrice.Round(2)
	i.UnitMaterialCost = unitMaterialCost.Round(2)
	i.UnitPackagingCost = unitPackagingCost.Round(2)
}

// LineTotal is unit price × quantity
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity).Round(2)
}

// Items is the set of lines on an order, stored as a JSON column
type Items []Item
