package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reves-en-feuilles/backend/internal/domain/settings"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

type memSettingsRepo struct {
	schedules map[uuid.UUID]*settings.FeeSchedule
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{schedules: make(map[uuid.UUID]*settings.FeeSchedule)}
}

func (r *memSettingsRepo) Find(_ context.Context, orgID uuid.UUID) (*settings.FeeSchedule, error) {
	s, ok := r.schedules[orgID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memSettingsRepo) Save(_ context.Context, s *settings.FeeSchedule) error {
	copied := *s
	r.schedules[s.OrgID] = &copied
	return nil
}

func TestSettingsService_GetSeedsDefaults(t *testing.T) {
	repo := newMemSettingsRepo()
	svc := NewSettingsService(repo, zap.NewNop())
	orgID := uuid.New()

	resp, err := svc.GetSchedule(context.Background(), orgID)
	require.NoError(t, err)
	assert.True(t, resp.VATRateMaterials.Equal(decimal.NewFromFloat(0.055)))
	assert.True(t, resp.UrssafRate.Equal(decimal.NewFromFloat(0.123)))

	// The seed is persisted, not recomputed per read.
	_, err = repo.Find(context.Background(), orgID)
	require.NoError(t, err)
}

func TestSettingsService_UpdateValidatesRates(t *testing.T) {
	repo := newMemSettingsRepo()
	svc := NewSettingsService(repo, zap.NewNop())
	orgID := uuid.New()

	_, err := svc.UpdateSchedule(context.Background(), orgID, UpdateFeeScheduleRequest{
		VATRateMaterials: decimal.NewFromFloat(1.5),
	})
	require.Error(t, err)

	resp, err := svc.UpdateSchedule(context.Background(), orgID, UpdateFeeScheduleRequest{
		VATRateMaterials: decimal.NewFromFloat(0.055),
		VATRatePackaging: decimal.NewFromFloat(0.20),
		UrssafRate:       decimal.NewFromFloat(0.128),
		PlatformChannel:  "etsy",
		PlatformPercent:  decimal.NewFromFloat(0.065),
		PlatformFixedFee: decimal.NewFromFloat(0.30),
	})
	require.NoError(t, err)
	assert.Equal(t, "etsy", resp.PlatformChannel)
	assert.True(t, resp.UrssafRate.Equal(decimal.NewFromFloat(0.128)))
}
