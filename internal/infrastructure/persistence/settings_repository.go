package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reves-en-feuilles/backend/internal/domain/settings"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// GormSettingsRepository implements the settings Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Find returns the organization's fee schedule
func (r *GormSettingsRepository) Find(ctx context.Context, orgID uuid.UUID) (*settings.FeeSchedule, error) {
	var s settings.FeeSchedule
	if err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Save persists the fee schedule
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.FeeSchedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

var _ settings.Repository = (*GormSettingsRepository)(nil)
