package settings

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reves-en-feuilles/backend/internal/domain/settings"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// SettingsService manages the per-organization fee schedule. Reads seed the
// defaults on first access so callers never handle a missing schedule.
type SettingsService struct {
	repo   settings.Repository
	logger *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo settings.Repository, logger *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// GetSchedule returns the fee schedule, seeding the defaults when none exists
func (s *SettingsService) GetSchedule(ctx context.Context, orgID uuid.UUID) (*FeeScheduleResponse, error) {
	schedule, err := s.repo.Find(ctx, orgID)
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		schedule = settings.DefaultFeeSchedule(orgID)
		if err := s.repo.Save(ctx, schedule); err != nil {
			return nil, err
		}
		s.logger.Info("seeded default fee schedule",
			zap.String("org_id", orgID.String()))
	}
	return ToFeeScheduleResponse(schedule), nil
}

// UpdateSchedule applies new rates to the schedule, creating it from the
// defaults first when needed
func (s *SettingsService) UpdateSchedule(ctx context.Context, orgID uuid.UUID, req UpdateFeeScheduleRequest) (*FeeScheduleResponse, error) {
	schedule, err := s.repo.Find(ctx, orgID)
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		schedule = settings.DefaultFeeSchedule(orgID)
	}

	if err := schedule.Update(
		req.VATRateMaterials, req.VATRatePackaging, req.UrssafRate,
		req.PlatformChannel, req.PlatformPercent, req.PlatformFixedFee,
		req.OtherFeesDefault,
	); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, schedule); err != nil {
		return nil, err
	}
	return ToFeeScheduleResponse(schedule), nil
}
