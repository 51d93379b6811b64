package order

import (
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/order"
	"github.com/reves-en-feuilles/backend/internal/domain/settings"
)

var hundred = decimal.NewFromInt(100)

// ComputeFinancials overwrites the order's financial snapshot from its item
// snapshots, the injected fee schedule and the resolved shipping-container
// cost. Every monetary output is rounded to 2 decimals at assignment so
// repeated recalculation never accumulates penny drift. The fee schedule is
// always passed in; nothing here reads ambient configuration.
func ComputeFinancials(o *order.Order, schedule *settings.FeeSchedule, containerCost decimal.Decimal) {
	o.RecomputeTotal()
	revenue := o.TotalAmount.Add(o.ShippingPrice).Round(2)

	materialNet := decimal.Zero
	packagingNet := decimal.Zero
	for _, item := range o.Items {
		materialNet = materialNet.Add(item.UnitMaterialCost.Mul(item.Quantity))
		packagingNet = packagingNet.Add(item.UnitPackagingCost.Mul(item.Quantity))
	}
	packagingNet = packagingNet.Add(containerCost)

	// Ledger costs are net of VAT; COGS is grossed up per rate class.
	one := decimal.NewFromInt(1)
	o.MaterialCost = materialNet.Mul(one.Add(schedule.VATRateMaterials)).Round(2)
	o.PackagingCost = packagingNet.Mul(one.Add(schedule.VATRatePackaging)).Round(2)

	o.UrssafFee = revenue.Mul(schedule.UrssafRate).Round(2)
	o.PlatformFee = decimal.Zero
	if schedule.PlatformChannel != "" && o.Channel == schedule.PlatformChannel {
		o.PlatformFee = revenue.Mul(schedule.PlatformPercent).Add(schedule.PlatformFixedFee).Round(2)
	}
	o.OtherFees = schedule.OtherFeesDefault.Round(2)
	o.TotalFees = o.UrssafFee.Add(o.PlatformFee).Add(o.OtherFees).Round(2)

	o.NetProfit = revenue.
		Sub(o.MaterialCost).
		Sub(o.PackagingCost).
		Sub(o.ShippingCost).
		Sub(o.TotalFees).
		Round(2)

	if revenue.IsZero() {
		o.MarginPercent = decimal.Zero
	} else {
		o.MarginPercent = o.NetProfit.Div(revenue).Mul(hundred).Round(2)
	}
}
