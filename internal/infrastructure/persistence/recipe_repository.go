package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reves-en-feuilles/backend/internal/domain/catalog"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// GormRecipeRepository implements RecipeRepository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// FindByID finds a recipe head by id within an organization
func (r *GormRecipeRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*catalog.Recipe, error) {
	var rec catalog.Recipe
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindAll returns recipe heads matching the filter
func (r *GormRecipeRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]catalog.Recipe, error) {
	var out []catalog.Recipe
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

// FindByIDs returns the recipe heads for a set of ids
func (r *GormRecipeRepository) FindByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]catalog.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []catalog.Recipe
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id IN ?", orgID, ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CountReferencingIngredient counts recipes whose current composition uses
// the ingredient. Compositions are JSON, so the match is a LIKE on the
// serialized ingredient id; uuids are long enough to make collisions moot.
func (r *GormRecipeRepository) CountReferencingIngredient(ctx context.Context, orgID, ingredientID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Recipe{}).
		Where("org_id = ? AND composition LIKE ?", orgID, "%"+ingredientID.String()+"%").
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Save persists the recipe head
func (r *GormRecipeRepository) Save(ctx context.Context, rec *catalog.Recipe) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// Delete removes the recipe head. Version snapshots stay; confirmed orders
// may still resolve them.
func (r *GormRecipeRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&catalog.Recipe{}).Error
}

var _ catalog.RecipeRepository = (*GormRecipeRepository)(nil)

// GormRecipeVersionRepository implements the append-only recipe snapshot store
type GormRecipeVersionRepository struct {
	db *gorm.DB
}

// NewGormRecipeVersionRepository creates a new GormRecipeVersionRepository
func NewGormRecipeVersionRepository(db *gorm.DB) *GormRecipeVersionRepository {
	return &GormRecipeVersionRepository{db: db}
}

// Append inserts a version snapshot
func (r *GormRecipeVersionRepository) Append(ctx context.Context, version *catalog.RecipeVersion) error {
	return r.db.WithContext(ctx).Create(version).Error
}

// FindByVersion returns one snapshot by recipe and version number
func (r *GormRecipeVersionRepository) FindByVersion(ctx context.Context, orgID, recipeID uuid.UUID, versionNumber int) (*catalog.RecipeVersion, error) {
	var v catalog.RecipeVersion
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND recipe_id = ? AND version_number = ?", orgID, recipeID, versionNumber).
		First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// FindAllForRecipe returns every snapshot of a recipe, oldest first
func (r *GormRecipeVersionRepository) FindAllForRecipe(ctx context.Context, orgID, recipeID uuid.UUID) ([]catalog.RecipeVersion, error) {
	var out []catalog.RecipeVersion
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND recipe_id = ?", orgID, recipeID).
		Order("version_number asc").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ catalog.RecipeVersionRepository = (*GormRecipeVersionRepository)(nil)
