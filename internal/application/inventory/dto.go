package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
)

// CreateIngredientRequest represents a request to register an ingredient.
// UnitCost is entered in €/kg for bulk categories and €/unit for packaging
// and accessories; normalization happens once, here at the boundary.
type CreateIngredientRequest struct {
	Name           string           `json:"name" binding:"required,max=120"`
	Category       string           `json:"category" binding:"required,max=50"`
	UnitCost       decimal.Decimal  `json:"unit_cost"`
	InitialStock   decimal.Decimal  `json:"initial_stock"`
	SupplierID     *uuid.UUID       `json:"supplier_id"`
	Subtype        string           `json:"subtype" binding:"max=50"`
	Capacity       *decimal.Decimal `json:"capacity"`
	AlertThreshold decimal.Decimal  `json:"alert_threshold"`
}

// UpdateIngredientRequest represents a partial ingredient update
type UpdateIngredientRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=120"`
	UnitCost       *decimal.Decimal `json:"unit_cost"`
	SupplierID     *uuid.UUID       `json:"supplier_id"`
	Subtype        *string          `json:"subtype" binding:"omitempty,max=50"`
	Capacity       *decimal.Decimal `json:"capacity"`
	AlertThreshold *decimal.Decimal `json:"alert_threshold"`
}

// IngredientResponse represents an ingredient in API responses
type IngredientResponse struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	Status          string           `json:"status"`
	CurrentStock    decimal.Decimal  `json:"current_stock"`
	WeightedAvgCost decimal.Decimal  `json:"weighted_avg_cost"`
	SupplierID      *uuid.UUID       `json:"supplier_id,omitempty"`
	Subtype         string           `json:"subtype,omitempty"`
	Capacity        *decimal.Decimal `json:"capacity,omitempty"`
	AlertThreshold  decimal.Decimal  `json:"alert_threshold"`
	BelowThreshold  bool             `json:"below_threshold"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ToIngredientResponse maps an ingredient to its response form
func ToIngredientResponse(ing *inventory.Ingredient) *IngredientResponse {
	return &IngredientResponse{
		ID:              ing.ID,
		Name:            ing.Name,
		Category:        string(ing.Category),
		Status:          string(ing.Status),
		CurrentStock:    ing.CurrentStock,
		WeightedAvgCost: ing.WeightedAvgCost,
		SupplierID:      ing.SupplierID,
		Subtype:         ing.Subtype,
		Capacity:        ing.Capacity,
		AlertThreshold:  ing.AlertThreshold,
		BelowThreshold:  ing.IsBelowThreshold(),
		CreatedAt:       ing.CreatedAt,
		UpdatedAt:       ing.UpdatedAt,
	}
}

// RecordMovementRequest represents a request to append a ledger movement
type RecordMovementRequest struct {
	IngredientID uuid.UUID        `json:"ingredient_id" binding:"required"`
	Type         string           `json:"type" binding:"required"`
	Quantity     decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Reason       string           `json:"reason" binding:"max=255"`
	Source       string           `json:"source"`
	SourceRef    string           `json:"source_ref" binding:"max=64"`
}

// MovementResponse represents a ledger movement in API responses
type MovementResponse struct {
	ID           uuid.UUID       `json:"id"`
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Type         string          `json:"type"`
	Class        string          `json:"class"`
	Source       string          `json:"source"`
	SourceRef    string          `json:"source_ref,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Reason       string          `json:"reason,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// ToMovementResponse maps a movement to its response form
func ToMovementResponse(m *inventory.StockMovement) *MovementResponse {
	return &MovementResponse{
		ID:           m.ID,
		IngredientID: m.IngredientID,
		Type:         string(m.Type),
		Class:        string(m.Class),
		Source:       string(m.Source),
		SourceRef:    m.SourceRef,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		TotalPrice:   m.TotalPrice,
		Reason:       m.Reason,
		OccurredAt:   m.OccurredAt,
	}
}

// CreateSupplierRequest represents a request to register a supplier
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Contact string `json:"contact" binding:"max=120"`
	Email   string `json:"email" binding:"omitempty,email"`
	Notes   string `json:"notes" binding:"max=500"`
}

// UpdateSupplierRequest mirrors CreateSupplierRequest for updates
type UpdateSupplierRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Contact string `json:"contact" binding:"max=120"`
	Email   string `json:"email" binding:"omitempty,email"`
	Notes   string `json:"notes" binding:"max=500"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	Email     string    `json:"email,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSupplierResponse maps a supplier to its response form
func ToSupplierResponse(s *inventory.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Email:     s.Email,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
