package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reves-en-feuilles/backend/internal/domain/catalog"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// GormPackRepository implements PackRepository using GORM
type GormPackRepository struct {
	db *gorm.DB
}

// NewGormPackRepository creates a new GormPackRepository
func NewGormPackRepository(db *gorm.DB) *GormPackRepository {
	return &GormPackRepository{db: db}
}

// FindByID finds a pack head by id within an organization
func (r *GormPackRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*catalog.Pack, error) {
	var p catalog.Pack
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll returns pack heads matching the filter
func (r *GormPackRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Pack, error) {
	var out []catalog.Pack
	q := r.db.WithContext(ctx).Where("org_id = ?", orgID)
	if filter.Search != "" {
		q = q.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		q = q.Where("status = ?", status)
	}
	if err := applyFilter(q, filter).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists the pack head
func (r *GormPackRepository) Save(ctx context.Context, p *catalog.Pack) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes the pack head, leaving its version snapshots
func (r *GormPackRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&catalog.Pack{}).Error
}

var _ catalog.PackRepository = (*GormPackRepository)(nil)

// GormPackVersionRepository implements the append-only pack snapshot store
type GormPackVersionRepository struct {
	db *gorm.DB
}

// NewGormPackVersionRepository creates a new GormPackVersionRepository
func NewGormPackVersionRepository(db *gorm.DB) *GormPackVersionRepository {
	return &GormPackVersionRepository{db: db}
}

// Append inserts a version snapshot
func (r *GormPackVersionRepository) Append(ctx context.Context, version *catalog.PackVersion) error {
	return r.db.WithContext(ctx).Create(version).Error
}

// FindByVersion returns one snapshot by pack and version number
func (r *GormPackVersionRepository) FindByVersion(ctx context.Context, orgID, packID uuid.UUID, versionNumber int) (*catalog.PackVersion, error) {
	var v catalog.PackVersion
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND pack_id = ? AND version_number = ?", orgID, packID, versionNumber).
		First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// FindAllForPack returns every snapshot of a pack, oldest first
func (r *GormPackVersionRepository) FindAllForPack(ctx context.Context, orgID, packID uuid.UUID) ([]catalog.PackVersion, error) {
	var out []catalog.PackVersion
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND pack_id = ?", orgID, packID).
		Order("version_number asc").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ catalog.PackVersionRepository = (*GormPackVersionRepository)(nil)
