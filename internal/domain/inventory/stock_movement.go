package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// MovementType represents the type of stock movement
type MovementType string

const (
	MovementTypePurchase   MovementType = "PURCHASE"
	MovementTypeSale       MovementType = "SALE"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
	MovementTypeProduction MovementType = "PRODUCTION"
	MovementTypeLoss       MovementType = "LOSS"
)

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale, MovementTypeAdjustment, MovementTypeProduction, MovementTypeLoss:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// EntityClass classifies what kind of stock the movement touches
type EntityClass string

const (
	EntityClassIngredient EntityClass = "INGREDIENT"
	EntityClassPackaging  EntityClass = "PACKAGING"
	EntityClassAccessory  EntityClass = "ACCESSORY"
)

// ClassFor maps an ingredient category to its ledger entity class
func ClassFor(category Category) EntityClass {
	switch category {
	case CategoryPackaging:
		return EntityClassPackaging
	case CategoryAccessory:
		return EntityClassAccessory
	default:
		return EntityClassIngredient
	}
}

// IsValid returns true if the entity class is valid
func (c EntityClass) IsValid() bool {
	switch c {
	case EntityClassIngredient, EntityClassPackaging, EntityClassAccessory:
		return true
	}
	return false
}

// MovementSource represents where the movement originated
type MovementSource string

const (
	MovementSourceManual  MovementSource = "MANUAL"
	MovementSourceInitial MovementSource = "INITIAL"
	MovementSourceImport  MovementSource = "IMPORT"
	MovementSourceOrder   MovementSource = "ORDER"
)

// IsValid returns true if the movement source is valid
func (s MovementSource) IsValid() bool {
	switch s {
	case MovementSourceManual, MovementSourceInitial, MovementSourceImport, MovementSourceOrder:
		return true
	}
	return false
}

// StockMovement is an immutable, append-only record of a stock change.
// Movements are never mutated or deleted after creation; corrections are
// made by appending a compensating movement. The Reason text is diagnostic
// only - movement-to-order reconciliation filters on Source/SourceRef.
type StockMovement struct {
	shared.BaseEntity
	OrgID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_movement_org_time,priority:1"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index:idx_movement_ingredient"`
	Type         MovementType    `gorm:"type:varchar(20);not null;index"`
	Class        EntityClass     `gorm:"type:varchar(20);not null"`
	Source       MovementSource  `gorm:"type:varchar(20);not null;index:idx_movement_source,priority:1"`
	SourceRef    string          `gorm:"type:varchar(50);index:idx_movement_source,priority:2"` // e.g. order id
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`                           // signed delta
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Reason       string          `gorm:"type:varchar(255)"`
	OccurredAt   time.Time       `gorm:"not null;index:idx_movement_org_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new stock movement record. Quantity is the
// signed delta: positive for stock entering, negative for stock leaving.
func NewStockMovement(
	orgID, ingredientID uuid.UUID,
	movementType MovementType,
	class EntityClass,
	source MovementSource,
	quantity decimal.Decimal,
	reason string,
) (*StockMovement, error) {
	if ingredientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}
	if !class.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTITY_CLASS", "Invalid entity class")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Invalid movement source")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}

	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		OrgID:        orgID,
		IngredientID: ingredientID,
		Type:         movementType,
		Class:        class,
		Source:       source,
		Quantity:     quantity,
		UnitPrice:    decimal.Zero,
		TotalPrice:   decimal.Zero,
		Reason:       reason,
		OccurredAt:   time.Now(),
	}, nil
}

// WithPricing sets the unit price and derives the total price from the
// absolute quantity. Used for purchase movements feeding the WAC.
func (m *StockMovement) WithPricing(unitPrice decimal.Decimal) *StockMovement {
	m.UnitPrice = unitPrice
	m.TotalPrice = m.Quantity.Abs().Mul(unitPrice)
	return m
}

// WithSourceRef tags the movement with its source document id
func (m *StockMovement) WithSourceRef(ref string) *StockMovement {
	m.SourceRef = ref
	return m
}

// IsPurchase returns true for purchase movements (the only ones feeding WAC)
func (m *StockMovement) IsPurchase() bool {
	return m.Type == MovementTypePurchase
}
