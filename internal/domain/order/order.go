package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusDraft     OrderStatus = "DRAFT"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusRefunded  OrderStatus = "REFUNDED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a known one
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPaid, StatusShipped, StatusDelivered, StatusRefunded, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// IsFulfilled reports whether stock has been deducted for an order in this
// status. Fulfilled statuses form a set; moving between two members of the
// set never touches stock.
func (s OrderStatus) IsFulfilled() bool {
	switch s {
	case StatusPaid, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s OrderStatus) IsTerminal() bool {
	return s == StatusRefunded || s == StatusCancelled
}

// CanTransitionTo checks if transition to target status is allowed.
// A SHIPPED order cannot be cancelled (a refund workflow applies instead),
// while a DELIVERED order can.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case StatusDraft:
		return target == StatusPaid || target == StatusCancelled
	case StatusPaid:
		return target == StatusShipped || target == StatusDelivered ||
			target == StatusCancelled || target == StatusRefunded
	case StatusShipped:
		return target == StatusDelivered || target == StatusRefunded
	case StatusDelivered:
		return target == StatusRefunded || target == StatusCancelled
	default:
		return false
	}
}

// Order is the sales aggregate. Items carry frozen price/cost/version
// snapshots taken at add time; the financial fields below are overwritten
// wholesale on every recomputation (no pending state).
type Order struct {
	shared.OrgAggregateRoot
	OrderNumber  string      `gorm:"type:varchar(40);not null;uniqueIndex"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Channel      string      `gorm:"type:varchar(40);not null;default:''"`
	CustomerName string      `gorm:"type:varchar(120);not null;default:''"`
	Items        Items       `gorm:"serializer:json"`

	// ManualTotal suppresses recomputation of TotalAmount from items.
	ManualTotal bool            `gorm:"not null;default:false"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	// Shipping: price is what the customer pays, cost is what carriage
	// actually costs the atelier.
	ShippingPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ShippingCost  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	// Shipping container. PackagingID is canonical once resolved; the type
	// name is the fallback used to resolve it the first time.
	PackagingType string     `gorm:"type:varchar(60);not null;default:''"`
	PackagingID   *uuid.UUID `gorm:"type:uuid"`

	// Financial snapshot, recomputed on confirm and item replacement.
	MaterialCost  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PackagingCost decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	UrssafFee     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PlatformFee   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OtherFees     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalFees     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	NetProfit     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	MarginPercent decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0"`

	PaidAt      *time.Time `gorm:"type:timestamp"`
	CancelledAt *time.Time `gorm:"type:timestamp"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a draft order on the given sales channel
func NewOrder(orgID uuid.UUID, orderNumber, channel string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order number cannot be empty")
	}
	o := &Order{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		OrderNumber:      orderNumber,
		Status:           StatusDraft,
		Channel:          channel,
		Items:            Items{},
		TotalAmount:      decimal.Zero,
		ShippingPrice:    decimal.Zero,
		ShippingCost:     decimal.Zero,
		MaterialCost:     decimal.Zero,
		PackagingCost:    decimal.Zero,
		UrssafFee:        decimal.Zero,
		PlatformFee:      decimal.Zero,
		OtherFees:        decimal.Zero,
		TotalFees:        decimal.Zero,
		NetProfit:        decimal.Zero,
		MarginPercent:    decimal.Zero,
	}
	o.AddDomainEvent(NewOrderCreatedEvent(o.ID, orgID, orderNumber))
	return o, nil
}

// AddItem appends an item snapshot. Only legal while the order is DRAFT;
// fulfilled orders change items through replacement, which reverts and
// re-deducts stock around the swap.
func (o *Order) AddItem(item Item) error {
	if o.Status != StatusDraft {
		return shared.NewDomainError("ILLEGAL_TRANSITION",
			fmt.Sprintf("Cannot add items to a %s order", o.Status))
	}
	if err := item.Validate(); err != nil {
		return err
	}
	o.Items = append(o.Items, item)
	o.RecomputeTotal()
	o.Touch()
	return nil
}

// ReplaceItems swaps the full item set. The caller owns the surrounding
// revert/re-deduct choreography when the order is fulfilled.
func (o *Order) ReplaceItems(items Items) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("ILLEGAL_TRANSITION",
			fmt.Sprintf("Cannot replace items on a %s order", o.Status))
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.Items = items
	o.RecomputeTotal()
	o.Touch()
	return nil
}

// RecomputeTotal derives TotalAmount from item snapshots unless a manual
// override is in force
func (o *Order) RecomputeTotal() {
	if o.ManualTotal {
		return
	}
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	o.TotalAmount = total.Round(2)
}

// SetManualTotal pins TotalAmount to the given value; later item changes
// no longer recompute it
func (o *Order) SetManualTotal(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Order total cannot be negative")
	}
	o.ManualTotal = true
	o.TotalAmount = amount.Round(2)
	o.Touch()
	return nil
}

// ClearManualTotal drops the override and recomputes from items
func (o *Order) ClearManualTotal() {
	o.ManualTotal = false
	o.RecomputeTotal()
	o.Touch()
}

// SetShipping records the shipping price charged and the real carriage cost
func (o *Order) SetShipping(price, cost decimal.Decimal) error {
	if price.IsNegative() || cost.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Shipping amounts cannot be negative")
	}
	o.ShippingPrice = price.Round(2)
	o.ShippingCost = cost.Round(2)
	o.Touch()
	return nil
}

// SetPackagingType sets the requested shipping-container type by name
func (o *Order) SetPackagingType(packagingType string) {
	o.PackagingType = packagingType
	o.Touch()
}

// PinPackaging persists the resolved shipping-container ingredient id so
// future reversal does not depend on name resolution
func (o *Order) PinPackaging(packagingID uuid.UUID) {
	o.PackagingID = &packagingID
	o.Touch()
}

// TransitionTo moves the order to the target status. Same-status calls are
// no-ops so retried confirm/cancel requests stay safe.
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if o.Status == target {
		return nil
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("ILLEGAL_TRANSITION",
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}
	from := o.Status
	o.Status = target
	now := time.Now()
	switch target {
	case StatusPaid:
		o.PaidAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
	}
	o.AddDomainEvent(NewOrderStatusChangedEvent(o.ID, o.OrgID, from, target))
	o.Touch()
	return nil
}

// IsFulfilled reports whether the order currently holds deducted stock
func (o *Order) IsFulfilled() bool {
	return o.Status.IsFulfilled()
}
