package settings

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/settings"
)

// UpdateFeeScheduleRequest carries the full set of rates; partial updates
// are not supported since the schedule is one small row
type UpdateFeeScheduleRequest struct {
	VATRateMaterials decimal.Decimal `json:"vat_rate_materials"`
	VATRatePackaging decimal.Decimal `json:"vat_rate_packaging"`
	UrssafRate       decimal.Decimal `json:"urssaf_rate"`
	PlatformChannel  string          `json:"platform_channel" binding:"max=40"`
	PlatformPercent  decimal.Decimal `json:"platform_percent"`
	PlatformFixedFee decimal.Decimal `json:"platform_fixed_fee"`
	OtherFeesDefault decimal.Decimal `json:"other_fees_default"`
}

// FeeScheduleResponse represents the fee schedule in API responses
type FeeScheduleResponse struct {
	VATRateMaterials decimal.Decimal `json:"vat_rate_materials"`
	VATRatePackaging decimal.Decimal `json:"vat_rate_packaging"`
	UrssafRate       decimal.Decimal `json:"urssaf_rate"`
	PlatformChannel  string          `json:"platform_channel"`
	PlatformPercent  decimal.Decimal `json:"platform_percent"`
	PlatformFixedFee decimal.Decimal `json:"platform_fixed_fee"`
	OtherFeesDefault decimal.Decimal `json:"other_fees_default"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToFeeScheduleResponse maps a fee schedule to its response form
func ToFeeScheduleResponse(s *settings.FeeSchedule) *FeeScheduleResponse {
	return &FeeScheduleResponse{
		VATRateMaterials: s.VATRateMaterials,
		VATRatePackaging: s.VATRatePackaging,
		UrssafRate:       s.UrssafRate,
		PlatformChannel:  s.PlatformChannel,
		PlatformPercent:  s.PlatformPercent,
		PlatformFixedFee: s.PlatformFixedFee,
		OtherFeesDefault: s.OtherFeesDefault,
		UpdatedAt:        s.UpdatedAt,
	}
}
