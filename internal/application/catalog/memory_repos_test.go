package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/reves-en-feuilles/backend/internal/domain/catalog"
	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// In-memory repositories shared by the catalog application tests.

type memRecipeRepo struct {
	items map[uuid.UUID]*catalog.Recipe
}

func newMemRecipeRepo() *memRecipeRepo {
	return &memRecipeRepo{items: make(map[uuid.UUID]*catalog.Recipe)}
}

func (r *memRecipeRepo) FindByID(_ context.Context, orgID, id uuid.UUID) (*catalog.Recipe, error) {
	rec, ok := r.items[id]
	if !ok || rec.OrgID != orgID {
		return nil, shared.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (r *memRecipeRepo) FindAll(_ context.Context, orgID uuid.UUID, _ shared.Filter) ([]catalog.Recipe, error) {
	var out []catalog.Recipe
	for _, rec := range r.items {
		if rec.OrgID == orgID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memRecipeRepo) FindByIDs(_ context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]catalog.Recipe, error) {
	var out []catalog.Recipe
	for _, id := range ids {
		if rec, ok := r.items[id]; ok && rec.OrgID == orgID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memRecipeRepo) CountReferencingIngredient(_ context.Context, orgID, ingredientID uuid.UUID) (int64, error) {
	var n int64
	for _, rec := range r.items {
		if rec.OrgID != orgID {
			continue
		}
		for _, item := range rec.Composition {
			if item.IngredientID == ingredientID {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *memRecipeRepo) Save(_ context.Context, rec *catalog.Recipe) error {
	copied := *rec
	r.items[rec.ID] = &copied
	return nil
}

func (r *memRecipeRepo) Delete(_ context.Context, orgID, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

type memRecipeVersionRepo struct {
	versions []catalog.RecipeVersion
}

func (r *memRecipeVersionRepo) Append(_ context.Context, v *catalog.RecipeVersion) error {
	r.versions = append(r.versions, *v)
	return nil
}

func (r *memRecipeVersionRepo) FindByVersion(_ context.Context, orgID, recipeID uuid.UUID, versionNumber int) (*catalog.RecipeVersion, error) {
	for i := range r.versions {
		v := r.versions[i]
		if v.OrgID == orgID && v.RecipeID == recipeID && v.VersionNumber == versionNumber {
			return &v, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memRecipeVersionRepo) FindAllForRecipe(_ context.Context, orgID, recipeID uuid.UUID) ([]catalog.RecipeVersion, error) {
	var out []catalog.RecipeVersion
	for _, v := range r.versions {
		if v.OrgID == orgID && v.RecipeID == recipeID {
			out = append(out, v)
		}
	}
	return out, nil
}

type memPackRepo struct {
	items map[uuid.UUID]*catalog.Pack
}

func newMemPackRepo() *memPackRepo {
	return &memPackRepo{items: make(map[uuid.UUID]*catalog.Pack)}
}

func (r *memPackRepo) FindByID(_ context.Context, orgID, id uuid.UUID) (*catalog.Pack, error) {
	p, ok := r.items[id]
	if !ok || p.OrgID != orgID {
		return nil, shared.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memPackRepo) FindAll(_ context.Context, orgID uuid.UUID, _ shared.Filter) ([]catalog.Pack, error) {
	var out []catalog.Pack
	for _, p := range r.items {
		if p.OrgID == orgID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPackRepo) Save(_ context.Context, p *catalog.Pack) error {
	copied := *p
	r.items[p.ID] = &copied
	return nil
}

func (r *memPackRepo) Delete(_ context.Context, orgID, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

type memPackVersionRepo struct {
	versions []catalog.PackVersion
}

func (r *memPackVersionRepo) Append(_ context.Context, v *catalog.PackVersion) error {
	r.versions = append(r.versions, *v)
	return nil
}

func (r *memPackVersionRepo) FindByVersion(_ context.Context, orgID, packID uuid.UUID, versionNumber int) (*catalog.PackVersion, error) {
	for i := range r.versions {
		v := r.versions[i]
		if v.OrgID == orgID && v.PackID == packID && v.VersionNumber == versionNumber {
			return &v, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPackVersionRepo) FindAllForPack(_ context.Context, orgID, packID uuid.UUID) ([]catalog.PackVersion, error) {
	var out []catalog.PackVersion
	for _, v := range r.versions {
		if v.OrgID == orgID && v.PackID == packID {
			out = append(out, v)
		}
	}
	return out, nil
}

type memIngredientRepo struct {
	items map[uuid.UUID]*inventory.Ingredient
}

func newMemIngredientRepo() *memIngredientRepo {
	return &memIngredientRepo{items: make(map[uuid.UUID]*inventory.Ingredient)}
}

func (r *memIngredientRepo) FindByID(_ context.Context, orgID, id uuid.UUID) (*inventory.Ingredient, error) {
	ing, ok := r.items[id]
	if !ok || ing.OrgID != orgID {
		return nil, shared.ErrNotFound
	}
	copied := *ing
	return &copied, nil
}

func (r *memIngredientRepo) FindAll(_ context.Context, orgID uuid.UUID, _ shared.Filter) ([]inventory.Ingredient, error) {
	var out []inventory.Ingredient
	for _, ing := range r.items {
		if ing.OrgID == orgID {
			out = append(out, *ing)
		}
	}
	return out, nil
}

func (r *memIngredientRepo) FindByCategory(_ context.Context, orgID uuid.UUID, category inventory.Category) ([]inventory.Ingredient, error) {
	var out []inventory.Ingredient
	for _, ing := range r.items {
		if ing.OrgID == orgID && ing.Category == category {
			out = append(out, *ing)
		}
	}
	return out, nil
}

func (r *memIngredientRepo) FindBelowThreshold(_ context.Context, orgID uuid.UUID) ([]inventory.Ingredient, error) {
	return nil, nil
}

func (r *memIngredientRepo) CountBySupplier(_ context.Context, orgID, supplierID uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *memIngredientRepo) Count(_ context.Context, orgID uuid.UUID, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *memIngredientRepo) Save(_ context.Context, ing *inventory.Ingredient) error {
	copied := *ing
	r.items[ing.ID] = &copied
	return nil
}

func (r *memIngredientRepo) Delete(_ context.Context, orgID, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}
