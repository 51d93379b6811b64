package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// RecipeUsage reports how many recipe compositions currently use an
// ingredient. Satisfied by the catalog recipe repository.
type RecipeUsage interface {
	CountReferencingIngredient(ctx context.Context, orgID, ingredientID uuid.UUID) (int64, error)
}

// LedgerService owns every balance-changing operation on ingredients.
// Direct writes to CurrentStock or WeightedAvgCost outside RecordMovement
// are forbidden; derived reads and drift-repair recomputation replay the
// movement history instead.
type LedgerService struct {
	scope          TransactionScope
	ingredientRepo inventory.IngredientRepository
	movementRepo   inventory.StockMovementRepository
	recipeUsage    RecipeUsage
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	scope TransactionScope,
	ingredientRepo inventory.IngredientRepository,
	movementRepo inventory.StockMovementRepository,
	recipeUsage RecipeUsage,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		scope:          scope,
		ingredientRepo: ingredientRepo,
		movementRepo:   movementRepo,
		recipeUsage:    recipeUsage,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func classFor(ing *inventory.Ingredient) inventory.EntityClass {
	return inventory.ClassFor(ing.Category)
}

// CreateIngredient registers an ingredient. The entered unit cost is
// normalized here (€/kg → €/g for bulk categories) and never converted
// again downstream. A positive initial stock is recorded as a purchase
// movement with source INITIAL so the ledger stays the single source of
// truth from the first gram.
func (s *LedgerService) CreateIngredient(ctx context.Context, orgID uuid.UUID, req CreateIngredientRequest) (*IngredientResponse, error) {
	ing, err := inventory.NewIngredient(orgID, req.Name, inventory.Category(req.Category))
	if err != nil {
		return nil, err
	}
	ing.SetSupplier(req.SupplierID)
	ing.SetPackagingProfile(req.Subtype, req.Capacity)
	if err := ing.SetAlertThreshold(req.AlertThreshold); err != nil {
		return nil, err
	}

	storedCost := inventory.NormalizeUnitCost(ing.Category, req.UnitCost)
	ing.SetWeightedAvgCost(storedCost)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.IngredientRepo().Save(ctx, ing); err != nil {
			return err
		}
		if !req.InitialStock.IsPositive() {
			return nil
		}
		movement, err := inventory.NewStockMovement(
			orgID, ing.ID,
			inventory.MovementTypePurchase,
			classFor(ing),
			inventory.MovementSourceInitial,
			req.InitialStock,
			fmt.Sprintf("Initial stock for %s", ing.Name),
		)
		if err != nil {
			return err
		}
		movement.WithPricing(storedCost)
		return s.ApplyMovement(ctx, repos, ing, movement)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, ing)
	return ToIngredientResponse(ing), nil
}

// UpdateIngredient applies a partial update. A new unit cost is normalized
// at this boundary and overwrites the cached WAC as a manual correction;
// RecomputeWAC restores the purchase-derived value if needed.
func (s *LedgerService) UpdateIngredient(ctx context.Context, orgID, id uuid.UUID, req UpdateIngredientRequest) (*IngredientResponse, error) {
	ing, err := s.ingredientRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := ing.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.SupplierID != nil {
		ing.SetSupplier(req.SupplierID)
	}
	if req.Subtype != nil || req.Capacity != nil {
		subtype := ing.Subtype
		if req.Subtype != nil {
			subtype = *req.Subtype
		}
		capacity := ing.Capacity
		if req.Capacity != nil {
			capacity = req.Capacity
		}
		ing.SetPackagingProfile(subtype, capacity)
	}
	if req.AlertThreshold != nil {
		if err := ing.SetAlertThreshold(*req.AlertThreshold); err != nil {
			return nil, err
		}
	}
	if req.UnitCost != nil {
		ing.SetWeightedAvgCost(inventory.NormalizeUnitCost(ing.Category, *req.UnitCost))
	}

	if err := s.ingredientRepo.Save(ctx, ing); err != nil {
		return nil, err
	}
	return ToIngredientResponse(ing), nil
}

// GetIngredient returns one ingredient
func (s *LedgerService) GetIngredient(ctx context.Context, orgID, id uuid.UUID) (*IngredientResponse, error) {
	ing, err := s.ingredientRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return ToIngredientResponse(ing), nil
}

// ListIngredients returns a paginated ingredient listing
func (s *LedgerService) ListIngredients(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[IngredientResponse], error) {
	items, err := s.ingredientRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ingredientRepo.Count(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]IngredientResponse, len(items))
	for i := range items {
		responses[i] = *ToIngredientResponse(&items[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListBelowThreshold returns ingredients whose stock fell under their alert
// threshold
func (s *LedgerService) ListBelowThreshold(ctx context.Context, orgID uuid.UUID) ([]IngredientResponse, error) {
	items, err := s.ingredientRepo.FindBelowThreshold(ctx, orgID)
	if err != nil {
		return nil, err
	}
	responses := make([]IngredientResponse, len(items))
	for i := range items {
		responses[i] = *ToIngredientResponse(&items[i])
	}
	return responses, nil
}

// ArchiveIngredient marks the ingredient archived; its ledger history stays
func (s *LedgerService) ArchiveIngredient(ctx context.Context, orgID, id uuid.UUID) error {
	ing, err := s.ingredientRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	ing.Archive()
	return s.ingredientRepo.Save(ctx, ing)
}

// DeleteIngredient soft-deletes the ingredient. Movements are never removed.
// Deletion is rejected while any recipe composition still references the
// ingredient; callers retire the recipes first.
func (s *LedgerService) DeleteIngredient(ctx context.Context, orgID, id uuid.UUID) error {
	ing, err := s.ingredientRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	count, err := s.recipeUsage.CountReferencingIngredient(ctx, orgID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrDependencyInUse
	}
	ing.MarkDeleted()
	return s.ingredientRepo.Save(ctx, ing)
}

// RecordMovement is the single mutation point of the stock ledger. The
// append, the balance update and the WAC update commit atomically.
func (s *LedgerService) RecordMovement(ctx context.Context, orgID uuid.UUID, req RecordMovementRequest) (*MovementResponse, error) {
	source := inventory.MovementSource(req.Source)
	if req.Source == "" {
		source = inventory.MovementSourceManual
	}

	var movement *inventory.StockMovement
	var ing *inventory.Ingredient

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		ing, err = repos.IngredientRepo().FindByID(ctx, orgID, req.IngredientID)
		if err != nil {
			return err
		}
		movement, err = inventory.NewStockMovement(
			orgID, ing.ID,
			inventory.MovementType(req.Type),
			classFor(ing),
			source,
			req.Quantity,
			req.Reason,
		)
		if err != nil {
			return err
		}
		if req.UnitPrice != nil {
			movement.WithPricing(*req.UnitPrice)
		}
		if req.SourceRef != "" {
			movement.WithSourceRef(req.SourceRef)
		}
		return s.ApplyMovement(ctx, repos, ing, movement)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, ing)
	return ToMovementResponse(movement), nil
}

// ApplyMovement appends the movement, folds its delta into the cached
// balance, refreshes the WAC for purchases and raises threshold alerts.
// Must run inside a transaction scope; the order engine calls it directly
// so deduction and reversal share the order's transaction.
func (s *LedgerService) ApplyMovement(ctx context.Context, repos TransactionalRepositories, ing *inventory.Ingredient, movement *inventory.StockMovement) error {
	if err := repos.MovementRepo().Append(ctx, movement); err != nil {
		return err
	}

	wasBelow := ing.IsBelowThreshold()
	ing.ApplyDelta(movement.Quantity)

	if movement.IsPurchase() {
		totals, err := repos.MovementRepo().SumPurchases(ctx, ing.OrgID, ing.ID)
		if err != nil {
			return err
		}
		ing.SetWeightedAvgCost(totals.WAC())
	}

	ing.AddDomainEvent(inventory.NewMovementRecordedEvent(ing, movement))
	if !wasBelow && ing.IsBelowThreshold() {
		ing.AddDomainEvent(inventory.NewStockBelowThresholdEvent(ing))
	}

	return repos.IngredientRepo().Save(ctx, ing)
}

// CurrentStock derives the balance from the full movement history
func (s *LedgerService) CurrentStock(ctx context.Context, orgID, ingredientID uuid.UUID) (decimal.Decimal, error) {
	return s.movementRepo.SumDeltas(ctx, orgID, ingredientID)
}

// WeightedAverageCost derives the WAC from purchase movements only;
// zero when no purchases exist
func (s *LedgerService) WeightedAverageCost(ctx context.Context, orgID, ingredientID uuid.UUID) (decimal.Decimal, error) {
	totals, err := s.movementRepo.SumPurchases(ctx, orgID, ingredientID)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.WAC(), nil
}

// MovementsFor lists the full ledger of one ingredient
func (s *LedgerService) MovementsFor(ctx context.Context, orgID, ingredientID uuid.UUID) ([]MovementResponse, error) {
	movements, err := s.movementRepo.FindByIngredient(ctx, orgID, ingredientID)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

// MovementsForOrder lists the movements an order produced, matched on the
// source reference, never by parsing reason text
func (s *LedgerService) MovementsForOrder(ctx context.Context, orgID, orderID uuid.UUID) ([]MovementResponse, error) {
	movements, err := s.movementRepo.FindBySourceRef(ctx, orgID, inventory.MovementSourceOrder, orderID.String())
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movements), nil
}

func toMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = *ToMovementResponse(&movements[i])
	}
	return responses
}

// RecomputeStock repairs balance drift by replaying the movement history.
// Audit tool, never on the hot path.
func (s *LedgerService) RecomputeStock(ctx context.Context, orgID, ingredientID uuid.UUID) (*IngredientResponse, error) {
	var ing *inventory.Ingredient
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		ing, err = repos.IngredientRepo().FindByID(ctx, orgID, ingredientID)
		if err != nil {
			return err
		}
		balance, err := repos.MovementRepo().SumDeltas(ctx, orgID, ingredientID)
		if err != nil {
			return err
		}
		drift := balance.Sub(ing.CurrentStock)
		if !drift.IsZero() {
			s.logger.Warn("stock drift repaired",
				zap.String("ingredient_id", ingredientID.String()),
				zap.String("drift", drift.String()),
			)
			ing.ApplyDelta(drift)
		}
		return repos.IngredientRepo().Save(ctx, ing)
	})
	if err != nil {
		return nil, err
	}
	return ToIngredientResponse(ing), nil
}

// RecomputeWAC repairs cost drift by replaying purchase movements
func (s *LedgerService) RecomputeWAC(ctx context.Context, orgID, ingredientID uuid.UUID) (*IngredientResponse, error) {
	var ing *inventory.Ingredient
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		ing, err = repos.IngredientRepo().FindByID(ctx, orgID, ingredientID)
		if err != nil {
			return err
		}
		totals, err := repos.MovementRepo().SumPurchases(ctx, orgID, ingredientID)
		if err != nil {
			return err
		}
		ing.SetWeightedAvgCost(totals.WAC())
		return repos.IngredientRepo().Save(ctx, ing)
	})
	if err != nil {
		return nil, err
	}
	return ToIngredientResponse(ing), nil
}

func (s *LedgerService) publishEvents(ctx context.Context, agg *inventory.Ingredient) {
	if s.eventPublisher == nil {
		return
	}
	events := agg.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events", zap.Error(err))
	}
	agg.ClearDomainEvents()
}
