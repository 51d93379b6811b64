package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/order"
)

// CreateOrderRequest represents a request to open a draft order
type CreateOrderRequest struct {
	OrderNumber   string          `json:"order_number" binding:"max=40"`
	Channel       string          `json:"channel" binding:"max=40"`
	CustomerName  string          `json:"customer_name" binding:"max=120"`
	PackagingType string          `json:"packaging_type" binding:"max=60"`
	ShippingPrice decimal.Decimal `json:"shipping_price"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
}

// AddItemRequest represents a request to add one line to a draft order.
// UnitPrice overrides the catalog price when set.
type AddItemRequest struct {
	Kind      string           `json:"kind" binding:"required"`
	TargetID  uuid.UUID        `json:"target_id" binding:"required"`
	Format    string           `json:"format" binding:"max=20"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// UpdateOrderRequest replaces the order's item set and optionally its
// shipping and total fields
type UpdateOrderRequest struct {
	Items         []AddItemRequest `json:"items" binding:"required,dive"`
	ShippingPrice *decimal.Decimal `json:"shipping_price"`
	ShippingCost  *decimal.Decimal `json:"shipping_cost"`
	ManualTotal   *decimal.Decimal `json:"manual_total"`
}

// UpdateStatusRequest represents a status transition request
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ItemResponse represents one order line in API responses
type ItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	Kind              string          `json:"kind"`
	TargetID          uuid.UUID       `json:"target_id"`
	Name              string          `json:"name"`
	Format            string          `json:"format,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	VersionNumber     int             `json:"version_number,omitempty"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	UnitMaterialCost  decimal.Decimal `json:"unit_material_cost"`
	UnitPackagingCost decimal.Decimal `json:"unit_packaging_cost"`
	LineTotal         decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	Status        string          `json:"status"`
	Channel       string          `json:"channel,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Items         []ItemResponse  `json:"items"`
	ManualTotal   bool            `json:"manual_total"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ShippingPrice decimal.Decimal `json:"shipping_price"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	PackagingType string          `json:"packaging_type,omitempty"`
	PackagingID   *uuid.UUID      `json:"packaging_id,omitempty"`
	MaterialCost  decimal.Decimal `json:"material_cost"`
	PackagingCost decimal.Decimal `json:"packaging_cost"`
	UrssafFee     decimal.Decimal `json:"urssaf_fee"`
	PlatformFee   decimal.Decimal `json:"platform_fee"`
	OtherFees     decimal.Decimal `json:"other_fees"`
	TotalFees     decimal.Decimal `json:"total_fees"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToOrderResponse maps an order to its response form
func ToOrderResponse(o *order.Order) *OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = ItemResponse{
			ID:                item.ID,
			Kind:              string(item.Kind),
			TargetID:          item.TargetID,
			Name:              item.Name,
			Format:            item.Format,
			Quantity:          item.Quantity,
			VersionNumber:     item.VersionNumber,
			UnitPrice:         item.UnitPrice,
			UnitMaterialCost:  item.UnitMaterialCost,
			UnitPackagingCost: item.UnitPackagingCost,
			LineTotal:         item.LineTotal(),
		}
	}
	return &OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		Channel:       o.Channel,
		CustomerName:  o.CustomerName,
		Items:         items,
		ManualTotal:   o.ManualTotal,
		TotalAmount:   o.TotalAmount,
		ShippingPrice: o.ShippingPrice,
		ShippingCost:  o.ShippingCost,
		PackagingType: o.PackagingType,
		PackagingID:   o.PackagingID,
		MaterialCost:  o.MaterialCost,
		PackagingCost: o.PackagingCost,
		UrssafFee:     o.UrssafFee,
		PlatformFee:   o.PlatformFee,
		OtherFees:     o.OtherFees,
		TotalFees:     o.TotalFees,
		NetProfit:     o.NetProfit,
		MarginPercent: o.MarginPercent,
		PaidAt:        o.PaidAt,
		CancelledAt:   o.CancelledAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
