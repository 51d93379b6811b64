package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/reves-en-feuilles/backend/internal/domain/catalog"
	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// PackService handles pack heads and their immutable version history.
// Recipe lines in a pack composition pin the recipe version current at save
// time, so later recipe edits never change what a pack historically held.
type PackService struct {
	packRepo       catalog.PackRepository
	versionRepo    catalog.PackVersionRepository
	recipeRepo     catalog.RecipeRepository
	recipeService  *RecipeService
	ingredientRepo inventory.IngredientRepository
}

// NewPackService creates a new PackService
func NewPackService(
	packRepo catalog.PackRepository,
	versionRepo catalog.PackVersionRepository,
	recipeRepo catalog.RecipeRepository,
	recipeService *RecipeService,
	ingredientRepo inventory.IngredientRepository,
) *PackService {
	return &PackService{
		packRepo:       packRepo,
		versionRepo:    versionRepo,
		recipeRepo:     recipeRepo,
		recipeService:  recipeService,
		ingredientRepo: ingredientRepo,
	}
}

// toComposition maps request lines to a pack composition, pinning each
// recipe line to the recipe's current head version. Recipe heads are
// fetched in one batch; a line referencing an unknown recipe fails the
// whole composition.
func (s *PackService) toComposition(ctx context.Context, orgID uuid.UUID, items []PackItemRequest) (catalog.PackComposition, error) {
	var recipeIDs []uuid.UUID
	for _, item := range items {
		if catalog.PackItemKind(item.Kind) == catalog.PackItemRecipe && item.RecipeID != nil {
			recipeIDs = append(recipeIDs, *item.RecipeID)
		}
	}
	headVersions := make(map[uuid.UUID]int, len(recipeIDs))
	if len(recipeIDs) > 0 {
		recipes, err := s.recipeRepo.FindByIDs(ctx, orgID, recipeIDs)
		if err != nil {
			return nil, err
		}
		for i := range recipes {
			headVersions[recipes[i].ID] = recipes[i].CompositionVersion
		}
	}

	comp := make(catalog.PackComposition, len(items))
	for i, item := range items {
		line := catalog.PackItem{
			Kind:        catalog.PackItemKind(item.Kind),
			RecipeID:    item.RecipeID,
			Format:      item.Format,
			PackagingID: item.PackagingID,
			Quantity:    item.Quantity,
		}
		if line.Kind == catalog.PackItemRecipe && item.RecipeID != nil {
			version, ok := headVersions[*item.RecipeID]
			if !ok {
				return nil, shared.ErrNotFound
			}
			line.RecipeVersion = version
		}
		comp[i] = line
	}
	return comp, nil
}

func (s *PackService) deriveCost(ctx context.Context, orgID uuid.UUID, p *catalog.Pack) error {
	costs := make(catalog.CostIndex)
	for _, item := range p.Composition {
		if item.Kind != catalog.PackItemPackaging || item.PackagingID == nil {
			continue
		}
		ing, err := s.ingredientRepo.FindByID(ctx, orgID, *item.PackagingID)
		if err != nil {
			if shared.IsNotFound(err) {
				continue
			}
			return err
		}
		costs[ing.ID] = ing.WeightedAvgCost
	}
	total, err := catalog.PackTotalCost(p.Composition, s.recipeService.CostPerGramAt(ctx, orgID), costs)
	if err != nil {
		return err
	}
	p.SetTotalCost(total)
	return nil
}

// CreatePack creates a draft pack and derives its total cost
func (s *PackService) CreatePack(ctx context.Context, orgID uuid.UUID, req CreatePackRequest) (*PackResponse, error) {
	comp, err := s.toComposition(ctx, orgID, req.Composition)
	if err != nil {
		return nil, err
	}
	p, err := catalog.NewPack(orgID, req.Name, comp)
	if err != nil {
		return nil, err
	}
	if err := p.SetPrice(req.Price); err != nil {
		return nil, err
	}
	if err := s.deriveCost(ctx, orgID, p); err != nil {
		return nil, err
	}
	if err := s.packRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return ToPackResponse(p), nil
}

// UpdatePack applies a head edit, snapshotting the pre-edit state first
// when the pack is ACTIVE
func (s *PackService) UpdatePack(ctx context.Context, orgID, id uuid.UUID, req UpdatePackRequest) (*PackResponse, error) {
	p, err := s.packRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	var newComp catalog.PackComposition
	if req.Composition != nil {
		newComp, err = s.toComposition(ctx, orgID, req.Composition)
		if err != nil {
			return nil, err
		}
		if err := newComp.Validate(); err != nil {
			return nil, err
		}
	}

	editsContent := req.Composition != nil || req.Price != nil
	if editsContent {
		if snapshot := p.SnapshotIfActive(); snapshot != nil {
			if err := s.versionRepo.Append(ctx, snapshot); err != nil {
				return nil, err
			}
		}
	}

	if req.Name != nil {
		if err := p.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if newComp != nil {
		if err := p.SetComposition(newComp); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := p.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if editsContent {
		if err := s.deriveCost(ctx, orgID, p); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := p.TransitionTo(catalog.ComponentStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.packRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return ToPackResponse(p), nil
}

// GetPack returns one pack head
func (s *PackService) GetPack(ctx context.Context, orgID, id uuid.UUID) (*PackResponse, error) {
	p, err := s.packRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return ToPackResponse(p), nil
}

// ListPacks returns all packs matching the filter
func (s *PackService) ListPacks(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]PackResponse, error) {
	packs, err := s.packRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]PackResponse, len(packs))
	for i := range packs {
		responses[i] = *ToPackResponse(&packs[i])
	}
	return responses, nil
}

// DeletePack removes a pack head and leaves its version history intact
func (s *PackService) DeletePack(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.packRepo.FindByID(ctx, orgID, id); err != nil {
		return err
	}
	return s.packRepo.Delete(ctx, orgID, id)
}

// GetVersion resolves a pack version, synthesizing from the head when the
// requested number is the head's current version
func (s *PackService) GetVersion(ctx context.Context, orgID, packID uuid.UUID, versionNumber int) (*PackVersionResponse, error) {
	v, err := s.ResolveVersion(ctx, orgID, packID, versionNumber)
	if err != nil {
		return nil, err
	}
	return ToPackVersionResponse(v), nil
}

// ListVersions returns the full version history of a pack
func (s *PackService) ListVersions(ctx context.Context, orgID, packID uuid.UUID) ([]PackVersionResponse, error) {
	versions, err := s.versionRepo.FindAllForPack(ctx, orgID, packID)
	if err != nil {
		return nil, err
	}
	responses := make([]PackVersionResponse, len(versions))
	for i := range versions {
		responses[i] = *ToPackVersionResponse(&versions[i])
	}
	return responses, nil
}

// ResolveVersion returns the raw version record; the order engine expands
// pack compositions from it during deduction and reversal
func (s *PackService) ResolveVersion(ctx context.Context, orgID, packID uuid.UUID, versionNumber int) (*catalog.PackVersion, error) {
	v, err := s.versionRepo.FindByVersion(ctx, orgID, packID, versionNumber)
	if err == nil {
		return v, nil
	}
	if !shared.IsNotFound(err) {
		return nil, err
	}
	p, err := s.packRepo.FindByID(ctx, orgID, packID)
	if err != nil {
		return nil, err
	}
	if p.CompositionVersion != versionNumber {
		return nil, shared.ErrNotFound
	}
	return p.VersionFromHead(), nil
}
