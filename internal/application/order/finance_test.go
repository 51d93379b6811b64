package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/google/uuid"

	"github.com/reves-en-feuilles/backend/internal/domain/order"
	"github.com/reves-en-feuilles/backend/internal/domain/settings"
)

func financeOrder(t *testing.T, channel string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(uuid.New(), "CMD-1", channel)
	require.NoError(t, err)
	item, err := order.NewItem(order.ItemRecipe, uuid.New(), "Jardin d'été", "100g", decimal.NewFromInt(2))
	require.NoError(t, err)
	item.Freeze(1, decimal.NewFromFloat(18.00), decimal.NewFromFloat(3.20), decimal.NewFromFloat(0.40))
	require.NoError(t, o.AddItem(item))
	return o
}

func TestComputeFinancials_PlatformFeeOnMatchingChannel(t *testing.T) {
	schedule := settings.DefaultFeeSchedule(uuid.New())
	schedule.PlatformChannel = "etsy"
	schedule.PlatformPercent = decimal.NewFromFloat(0.065)
	schedule.PlatformFixedFee = decimal.NewFromFloat(0.30)

	matched := financeOrder(t, "etsy")
	ComputeFinancials(matched, schedule, decimal.Zero)
	// 36.00 × 6.5% + 0.30
	assert.True(t, matched.PlatformFee.Equal(decimal.NewFromFloat(2.64)), "got %s", matched.PlatformFee)

	other := financeOrder(t, "marché")
	ComputeFinancials(other, schedule, decimal.Zero)
	assert.True(t, other.PlatformFee.IsZero())
}

func TestComputeFinancials_ManualTotalDrivesRevenue(t *testing.T) {
	o := financeOrder(t, "boutique")
	require.NoError(t, o.SetManualTotal(decimal.NewFromFloat(30.00)))

	schedule := settings.DefaultFeeSchedule(o.OrgID)
	ComputeFinancials(o, schedule, decimal.Zero)

	assert.True(t, o.TotalAmount.Equal(decimal.NewFromFloat(30.00)))
	// urssaf on the manual total, not the item sum
	assert.True(t, o.UrssafFee.Equal(decimal.NewFromFloat(3.69)), "got %s", o.UrssafFee)
}

func TestComputeFinancials_ZeroRevenueHasZeroMargin(t *testing.T) {
	o, err := order.NewOrder(uuid.New(), "CMD-2", "")
	require.NoError(t, err)

	ComputeFinancials(o, settings.DefaultFeeSchedule(o.OrgID), decimal.Zero)

	assert.True(t, o.MarginPercent.IsZero())
	assert.True(t, o.NetProfit.IsZero())
}

func TestComputeFinancials_Idempotent(t *testing.T) {
	o := financeOrder(t, "boutique")
	require.NoError(t, o.SetShipping(decimal.NewFromFloat(4.50), decimal.NewFromFloat(3.00)))
	schedule := settings.DefaultFeeSchedule(o.OrgID)

	ComputeFinancials(o, schedule, decimal.NewFromFloat(0.50))
	first := *o
	ComputeFinancials(o, schedule, decimal.NewFromFloat(0.50))

	assert.True(t, o.NetProfit.Equal(first.NetProfit))
	assert.True(t, o.MaterialCost.Equal(first.MaterialCost))
	assert.True(t, o.MarginPercent.Equal(first.MarginPercent))
}
