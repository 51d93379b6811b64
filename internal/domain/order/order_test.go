package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), "CMD-2026-0001", "direct")
	require.NoError(t, err)
	return o
}

func newTestItem(t *testing.T, kind ItemKind, price float64, qty int64) Item {
	t.Helper()
	item, err := NewItem(kind, uuid.New(), "Tisane du Soir", "50", decimal.NewFromInt(qty))
	require.NoError(t, err)
	item.Freeze(1, decimal.NewFromFloat(price), decimal.NewFromFloat(1.20), decimal.NewFromFloat(0.35))
	return item
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusDraft, StatusPaid, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusShipped, false},
		{StatusPaid, StatusShipped, true},
		{StatusPaid, StatusDelivered, true},
		{StatusPaid, StatusCancelled, true},
		{StatusPaid, StatusRefunded, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusRefunded, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, true},
		{StatusDelivered, StatusRefunded, true},
		{StatusRefunded, StatusPaid, false},
		{StatusCancelled, StatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsFulfilled(t *testing.T) {
	assert.True(t, StatusPaid.IsFulfilled())
	assert.True(t, StatusShipped.IsFulfilled())
	assert.True(t, StatusDelivered.IsFulfilled())
	assert.False(t, StatusDraft.IsFulfilled())
	assert.False(t, StatusRefunded.IsFulfilled())
	assert.False(t, StatusCancelled.IsFulfilled())
}

func TestNewItem_RejectsUnknownKind(t *testing.T) {
	_, err := NewItem("VOUCHER", uuid.New(), "Bon cadeau", "", decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestNewItem_Validation(t *testing.T) {
	_, err := NewItem(ItemRecipe, uuid.Nil, "x", "50", decimal.NewFromInt(1))
	assert.Error(t, err)

	_, err = NewItem(ItemRecipe, uuid.New(), "x", "", decimal.NewFromInt(1))
	assert.Error(t, err, "recipe line needs a format")

	_, err = NewItem(ItemPack, uuid.New(), "x", "", decimal.NewFromInt(1))
	assert.NoError(t, err, "pack line has no format")

	_, err = NewItem(ItemAccessory, uuid.New(), "x", "", decimal.Zero)
	assert.Error(t, err)
}

func TestOrder_AddItem_DraftOnly(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AddItem(newTestItem(t, ItemRecipe, 8.50, 2)))
	require.NoError(t, o.TransitionTo(StatusPaid))

	err := o.AddItem(newTestItem(t, ItemRecipe, 8.50, 1))
	assert.Error(t, err)
	assert.Len(t, o.Items, 1)
}

func TestOrder_RecomputeTotal(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AddItem(newTestItem(t, ItemRecipe, 8.50, 2)))
	require.NoError(t, o.AddItem(newTestItem(t, ItemAccessory, 3.25, 1)))

	// 2×8.50 + 1×3.25
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(20.25)), o.TotalAmount.String())
}

func TestOrder_ManualTotal_SuppressesRecompute(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AddItem(newTestItem(t, ItemRecipe, 8.50, 1)))
	require.NoError(t, o.SetManualTotal(decimal.NewFromInt(30)))

	require.NoError(t, o.AddItem(newTestItem(t, ItemRecipe, 8.50, 4)))
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(30)))

	o.ClearManualTotal()
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(42.50)), o.TotalAmount.String())
}

func TestOrder_TransitionTo_StampsTimestamps(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.TransitionTo(StatusPaid))
	require.NotNil(t, o.PaidAt)

	require.NoError(t, o.TransitionTo(StatusCancelled))
	require.NotNil(t, o.CancelledAt)
}

func TestOrder_TransitionTo_SameStatusIsNoOp(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.TransitionTo(StatusPaid))
	paidAt := o.PaidAt

	require.NoError(t, o.TransitionTo(StatusPaid))
	assert.Equal(t, paidAt, o.PaidAt)
}

func TestOrder_TransitionTo_ShippedCannotCancel(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.TransitionTo(StatusPaid))
	require.NoError(t, o.TransitionTo(StatusShipped))

	err := o.TransitionTo(StatusCancelled)
	require.Error(t, err)

	// Delivered orders can still be cancelled.
	require.NoError(t, o.TransitionTo(StatusDelivered))
	assert.NoError(t, o.TransitionTo(StatusCancelled))
}

func TestOrder_ReplaceItems(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AddItem(newTestItem(t, ItemRecipe, 8.50, 2)))
	require.NoError(t, o.TransitionTo(StatusPaid))

	replacement := Items{newTestItem(t, ItemPack, 24.90, 1)}
	require.NoError(t, o.ReplaceItems(replacement))
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(24.90)))

	require.NoError(t, o.TransitionTo(StatusCancelled))
	assert.Error(t, o.ReplaceItems(Items{}))
}
