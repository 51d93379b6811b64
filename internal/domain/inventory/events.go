package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// Event types for the inventory domain
const (
	EventTypeIngredientCreated     = "inventory.ingredient.created"
	EventTypeMovementRecorded      = "inventory.movement.recorded"
	EventTypeStockBelowThreshold   = "inventory.stock.below_threshold"
	EventTypeIngredientCostChanged = "inventory.ingredient.cost_changed"
)

// IngredientCreatedEvent is raised when a new ingredient is registered
type IngredientCreatedEvent struct {
	shared.BaseDomainEvent
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// NewIngredientCreatedEvent creates a new IngredientCreatedEvent
func NewIngredientCreatedEvent(ing *Ingredient) *IngredientCreatedEvent {
	return &IngredientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIngredientCreated, "Ingredient", ing.ID, ing.OrgID),
		Name:            ing.Name,
		Category:        ing.Category,
	}
}

// MovementRecordedEvent is raised when a movement is appended to the ledger
type MovementRecordedEvent struct {
	shared.BaseDomainEvent
	MovementType MovementType    `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// NewMovementRecordedEvent creates a new MovementRecordedEvent
func NewMovementRecordedEvent(ing *Ingredient, m *StockMovement) *MovementRecordedEvent {
	return &MovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMovementRecorded, "Ingredient", ing.ID, ing.OrgID),
		MovementType:    m.Type,
		Quantity:        m.Quantity,
		BalanceAfter:    ing.CurrentStock,
	}
}

// StockBelowThresholdEvent is raised when stock falls under the alert threshold
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	IngredientName string          `json:"ingredient_name"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	Threshold      decimal.Decimal `json:"threshold"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(ing *Ingredient) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, "Ingredient", ing.ID, ing.OrgID),
		IngredientName:  ing.Name,
		CurrentStock:    ing.CurrentStock,
		Threshold:       ing.AlertThreshold,
	}
}
