package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/catalog"
	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// RecipeService handles recipe heads and their immutable version history
type RecipeService struct {
	recipeRepo     catalog.RecipeRepository
	versionRepo    catalog.RecipeVersionRepository
	ingredientRepo inventory.IngredientRepository
}

// NewRecipeService creates a new RecipeService
func NewRecipeService(
	recipeRepo catalog.RecipeRepository,
	versionRepo catalog.RecipeVersionRepository,
	ingredientRepo inventory.IngredientRepository,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		versionRepo:    versionRepo,
		ingredientRepo: ingredientRepo,
	}
}

func toComposition(items []RecipeItemRequest) catalog.RecipeComposition {
	comp := make(catalog.RecipeComposition, len(items))
	for i, item := range items {
		comp[i] = catalog.RecipeItem{IngredientID: item.IngredientID, Percentage: item.Percentage}
	}
	return comp
}

// costIndexFor builds the ingredient cost map the cost engine consumes
func (s *RecipeService) costIndexFor(ctx context.Context, orgID uuid.UUID, comp catalog.RecipeComposition) (catalog.CostIndex, error) {
	index := make(catalog.CostIndex, len(comp))
	for _, item := range comp {
		ing, err := s.ingredientRepo.FindByID(ctx, orgID, item.IngredientID)
		if err != nil {
			if shared.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		index[ing.ID] = ing.WeightedAvgCost
	}
	return index, nil
}

func (s *RecipeService) deriveCost(ctx context.Context, orgID uuid.UUID, r *catalog.Recipe) error {
	index, err := s.costIndexFor(ctx, orgID, r.Composition)
	if err != nil {
		return err
	}
	r.SetTotalIngredientCost(catalog.RecipeCostPerGram(r.Composition, index))
	return nil
}

// CreateRecipe creates a draft recipe and derives its cost per gram
func (s *RecipeService) CreateRecipe(ctx context.Context, orgID uuid.UUID, req CreateRecipeRequest) (*RecipeResponse, error) {
	r, err := catalog.NewRecipe(orgID, req.Name, toComposition(req.Composition))
	if err != nil {
		return nil, err
	}
	if req.Prices != nil {
		r.SetPrices(req.Prices)
	}
	if err := s.deriveCost(ctx, orgID, r); err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	return ToRecipeResponse(r), nil
}

// UpdateRecipe applies a head edit. When the recipe is ACTIVE the pre-edit
// state is snapshotted into the version history before anything changes.
func (s *RecipeService) UpdateRecipe(ctx context.Context, orgID, id uuid.UUID, req UpdateRecipeRequest) (*RecipeResponse, error) {
	r, err := s.recipeRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	// Validate the incoming composition before snapshotting so a rejected
	// edit burns no version number.
	var newComp catalog.RecipeComposition
	if req.Composition != nil {
		newComp = toComposition(req.Composition)
		if err := newComp.Validate(); err != nil {
			return nil, err
		}
	}

	editsContent := req.Composition != nil || req.Prices != nil
	if editsContent {
		if snapshot := r.SnapshotIfActive(); snapshot != nil {
			if err := s.versionRepo.Append(ctx, snapshot); err != nil {
				return nil, err
			}
		}
	}

	if req.Name != nil {
		if err := r.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if newComp != nil {
		if err := r.SetComposition(newComp); err != nil {
			return nil, err
		}
	}
	if req.Prices != nil {
		r.SetPrices(req.Prices)
	}
	if editsContent {
		if err := s.deriveCost(ctx, orgID, r); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := r.TransitionTo(catalog.ComponentStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.recipeRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	return ToRecipeResponse(r), nil
}

// GetRecipe returns one recipe head
func (s *RecipeService) GetRecipe(ctx context.Context, orgID, id uuid.UUID) (*RecipeResponse, error) {
	r, err := s.recipeRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return ToRecipeResponse(r), nil
}

// ListRecipes returns a paginated recipe listing
func (s *RecipeService) ListRecipes(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]RecipeResponse, error) {
	recipes, err := s.recipeRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		responses[i] = *ToRecipeResponse(&recipes[i])
	}
	return responses, nil
}

// DeleteRecipe removes a recipe head and leaves its version history intact
func (s *RecipeService) DeleteRecipe(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.recipeRepo.FindByID(ctx, orgID, id); err != nil {
		return err
	}
	return s.recipeRepo.Delete(ctx, orgID, id)
}

// GetVersion resolves a recipe version. A stored snapshot wins; when the
// requested number is the head's current version, a view is synthesized from
// the head so callers never special-case it.
func (s *RecipeService) GetVersion(ctx context.Context, orgID, recipeID uuid.UUID, versionNumber int) (*RecipeVersionResponse, error) {
	v, err := s.ResolveVersion(ctx, orgID, recipeID, versionNumber)
	if err != nil {
		return nil, err
	}
	return ToRecipeVersionResponse(v), nil
}

// ListVersions returns the full version history of a recipe
func (s *RecipeService) ListVersions(ctx context.Context, orgID, recipeID uuid.UUID) ([]RecipeVersionResponse, error) {
	versions, err := s.versionRepo.FindAllForRecipe(ctx, orgID, recipeID)
	if err != nil {
		return nil, err
	}
	responses := make([]RecipeVersionResponse, len(versions))
	for i := range versions {
		responses[i] = *ToRecipeVersionResponse(&versions[i])
	}
	return responses, nil
}

// ResolveVersion returns the raw version record; the order engine expands
// recipe compositions from it during deduction and reversal
func (s *RecipeService) ResolveVersion(ctx context.Context, orgID, recipeID uuid.UUID, versionNumber int) (*catalog.RecipeVersion, error) {
	v, err := s.versionRepo.FindByVersion(ctx, orgID, recipeID, versionNumber)
	if err == nil {
		return v, nil
	}
	if !shared.IsNotFound(err) {
		return nil, err
	}
	r, err := s.recipeRepo.FindByID(ctx, orgID, recipeID)
	if err != nil {
		return nil, err
	}
	if r.CompositionVersion != versionNumber {
		return nil, shared.ErrNotFound
	}
	return r.VersionFromHead(), nil
}

// CostPerGramAt returns the cost per gram of a recipe at a pinned version.
// Matches the catalog.RecipeCostResolver signature used by pack costing.
func (s *RecipeService) CostPerGramAt(ctx context.Context, orgID uuid.UUID) catalog.RecipeCostResolver {
	return func(recipeID uuid.UUID, version int) (decimal.Decimal, error) {
		v, err := s.ResolveVersion(ctx, orgID, recipeID, version)
		if err != nil {
			return decimal.Zero, err
		}
		return v.TotalIngredientCost, nil
	}
}
