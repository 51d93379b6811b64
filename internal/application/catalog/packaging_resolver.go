package catalog

import (
	"bytes"
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/reves-en-feuilles/backend/internal/domain/catalog"
	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
)

// PackagingResolver matches a sellable format to a packaging ingredient.
// Candidates are narrowed to the requested kind (doypack, sachet, carton...)
// by subtype, falling back to a name heuristic, then matched by declared
// capacity and finally by name substring. Ties are broken by lowest id so
// repeated resolutions of the same format pick the same ingredient.
type PackagingResolver struct {
	ingredientRepo inventory.IngredientRepository
}

// NewPackagingResolver creates a new PackagingResolver
func NewPackagingResolver(ingredientRepo inventory.IngredientRepository) *PackagingResolver {
	return &PackagingResolver{ingredientRepo: ingredientRepo}
}

// FindPackaging returns the packaging ingredient matching the format and
// kind, or nil when nothing matches. No match is not an error: the caller
// treats it as "no packaging cost or deduction applies" and logs a warning.
func (r *PackagingResolver) FindPackaging(ctx context.Context, orgID uuid.UUID, format, kind string) (*inventory.Ingredient, error) {
	candidates, err := r.ingredientRepo.FindByCategory(ctx, orgID, inventory.CategoryPackaging)
	if err != nil {
		return nil, err
	}

	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != "" {
		candidates = filterKind(candidates, kind)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	if grams, err := catalog.ParseFormatGrams(format); err == nil {
		var byCapacity []inventory.Ingredient
		for _, c := range candidates {
			if c.Capacity != nil && c.Capacity.Equal(grams) {
				byCapacity = append(byCapacity, c)
			}
		}
		if len(byCapacity) > 0 {
			return lowestID(byCapacity), nil
		}
	}

	// Capacity gave nothing; fall back to a name-substring match on the
	// raw format value.
	needle := strings.ToLower(strings.TrimSpace(format))
	if needle == "" {
		return nil, nil
	}
	var byName []inventory.Ingredient
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			byName = append(byName, c)
		}
	}
	if len(byName) == 0 {
		return nil, nil
	}
	return lowestID(byName), nil
}

// FindByTypeName resolves a shipping container by its type name (carton,
// pochette...), matching subtype first and falling back to the ingredient
// name. Same nil-on-no-match and lowest-id tie-break contract as
// FindPackaging.
func (r *PackagingResolver) FindByTypeName(ctx context.Context, orgID uuid.UUID, typeName string) (*inventory.Ingredient, error) {
	typeName = strings.ToLower(strings.TrimSpace(typeName))
	if typeName == "" {
		return nil, nil
	}
	candidates, err := r.ingredientRepo.FindByCategory(ctx, orgID, inventory.CategoryPackaging)
	if err != nil {
		return nil, err
	}
	var matches []inventory.Ingredient
	for _, c := range candidates {
		if strings.ToLower(c.Subtype) == typeName || strings.Contains(strings.ToLower(c.Name), typeName) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return lowestID(matches), nil
}

func filterKind(candidates []inventory.Ingredient, kind string) []inventory.Ingredient {
	var out []inventory.Ingredient
	for _, c := range candidates {
		if strings.ToLower(c.Subtype) == kind {
			out = append(out, c)
			continue
		}
		if c.Subtype == "" && strings.Contains(strings.ToLower(c.Name), kind) {
			out = append(out, c)
		}
	}
	return out
}

// lowestID picks the candidate with the smallest id, the deterministic
// tie-break among equal matches
func lowestID(candidates []inventory.Ingredient) *inventory.Ingredient {
	best := 0
	for i := 1; i < len(candidates); i++ {
		if bytes.Compare(candidates[i].ID[:], candidates[best].ID[:]) < 0 {
			best = i
		}
	}
	return &candidates[best]
}
