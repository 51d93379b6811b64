package settings

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// FeeSchedule holds the organization-wide rates the financial snapshot
// calculation reads. It is always passed into the calculation explicitly;
// nothing reads it from ambient state.
type FeeSchedule struct {
	shared.BaseEntity
	OrgID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	// VAT rates, as fractions (0.055 = 5.5%). Unit costs in the ledger are
	// net of VAT; the snapshot grosses COGS up with these.
	VATRateMaterials decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	VATRatePackaging decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`

	// URSSAF social contribution rate applied to revenue.
	UrssafRate decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`

	// Platform commission, applied only when the order's sales channel
	// matches PlatformChannel.
	PlatformChannel  string          `gorm:"type:varchar(40);not null;default:''"`
	PlatformPercent  decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	PlatformFixedFee decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	// Flat default applied to every order.
	OtherFeesDefault decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (FeeSchedule) TableName() string {
	return "fee_schedules"
}

// DefaultFeeSchedule returns the schedule seeded for a new organization:
// French reduced VAT on foodstuffs, standard VAT on packaging, and the
// micro-entrepreneur URSSAF rate for goods sales.
func DefaultFeeSchedule(orgID uuid.UUID) *FeeSchedule {
	return &FeeSchedule{
		BaseEntity:       shared.NewBaseEntity(),
		OrgID:            orgID,
		VATRateMaterials: decimal.NewFromFloat(0.055),
		VATRatePackaging: decimal.NewFromFloat(0.20),
		UrssafRate:       decimal.NewFromFloat(0.123),
		PlatformChannel:  "",
		PlatformPercent:  decimal.Zero,
		PlatformFixedFee: decimal.Zero,
		OtherFeesDefault: decimal.Zero,
	}
}

// Update applies new rates after validation
func (f *FeeSchedule) Update(vatMaterials, vatPackaging, urssaf decimal.Decimal, platformChannel string, platformPercent, platformFixed, otherFees decimal.Decimal) error {
	for _, rate := range []decimal.Decimal{vatMaterials, vatPackaging, urssaf, platformPercent} {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return shared.NewDomainError("INVALID_RATE", "Rates must be fractions between 0 and 1")
		}
	}
	if platformFixed.IsNegative() || otherFees.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Fee amounts cannot be negative")
	}
	f.VATRateMaterials = vatMaterials
	f.VATRatePackaging = vatPackaging
	f.UrssafRate = urssaf
	f.PlatformChannel = platformChannel
	f.PlatformPercent = platformPercent
	f.PlatformFixedFee = platformFixed.Round(2)
	f.OtherFeesDefault = otherFees.Round(2)
	f.Touch()
	return nil
}
