package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appcatalog "github.com/reves-en-feuilles/backend/internal/application/catalog"
	appinventory "github.com/reves-en-feuilles/backend/internal/application/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/catalog"
	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/order"
)

// usage is one ingredient draw computed by expanding an order's items
// against their pinned composition versions. Quantities are positive; the
// movement direction is decided by the caller.
type usage struct {
	ingredientID uuid.UUID
	quantity     decimal.Decimal
	label        string
}

// stockFlow expands order items into ingredient usages and applies the
// resulting movements through the ledger. Deduction and reversal share the
// same expansion, which is what makes revert-then-rededuct symmetric.
type stockFlow struct {
	ledger    *appinventory.LedgerService
	recipeSvc *appcatalog.RecipeService
	packSvc   *appcatalog.PackService
	resolver  *appcatalog.PackagingResolver
	logger    *zap.Logger
}

func newStockFlow(
	ledger *appinventory.LedgerService,
	recipeSvc *appcatalog.RecipeService,
	packSvc *appcatalog.PackService,
	resolver *appcatalog.PackagingResolver,
	logger *zap.Logger,
) *stockFlow {
	return &stockFlow{
		ledger:    ledger,
		recipeSvc: recipeSvc,
		packSvc:   packSvc,
		resolver:  resolver,
		logger:    logger,
	}
}

// expand computes the full per-ingredient usage list for the order's
// current items, resolving every composition at the version frozen on the
// item, never the live head.
func (f *stockFlow) expand(ctx context.Context, ord *order.Order) ([]usage, error) {
	var usages []usage
	for _, item := range ord.Items {
		switch item.Kind {
		case order.ItemRecipe:
			expanded, err := f.expandRecipe(ctx, ord, item.TargetID, item.VersionNumber, item.Format, item.Quantity, item.Name)
			if err != nil {
				return nil, err
			}
			usages = append(usages, expanded...)

			// One retail packaging unit per quantity sold. Resolved
			// against the live catalog on every expansion, so a
			// packaging ingredient created between deduction and
			// reversal can change which one the reversal restores;
			// only the shipping container below is pinned on the order.
			pkg, err := f.resolver.FindPackaging(ctx, ord.OrgID, item.Format, "")
			if err != nil {
				return nil, err
			}
			if pkg == nil {
				f.logger.Warn("no packaging resolved for recipe item",
					zap.String("order_number", ord.OrderNumber),
					zap.String("format", item.Format),
				)
			} else {
				usages = append(usages, usage{
					ingredientID: pkg.ID,
					quantity:     item.Quantity,
					label:        fmt.Sprintf("order %s: packaging for %s", ord.OrderNumber, item.Name),
				})
			}

		case order.ItemPack:
			pv, err := f.packSvc.ResolveVersion(ctx, ord.OrgID, item.TargetID, item.VersionNumber)
			if err != nil {
				return nil, err
			}
			for _, line := range pv.Composition {
				switch line.Kind {
				case catalog.PackItemRecipe:
					expanded, err := f.expandRecipe(ctx, ord, *line.RecipeID, line.RecipeVersion, line.Format,
						line.Quantity.Mul(item.Quantity), item.Name)
					if err != nil {
						return nil, err
					}
					usages = append(usages, expanded...)
				case catalog.PackItemPackaging:
					usages = append(usages, usage{
						ingredientID: *line.PackagingID,
						quantity:     line.Quantity.Mul(item.Quantity),
						label:        fmt.Sprintf("order %s: packaging in %s", ord.OrderNumber, item.Name),
					})
				}
			}

		case order.ItemAccessory:
			usages = append(usages, usage{
				ingredientID: item.TargetID,
				quantity:     item.Quantity,
				label:        fmt.Sprintf("order %s: %s", ord.OrderNumber, item.Name),
			})
		}
	}

	// Shipping container, once per order. The id was pinned when the
	// order was confirmed; reversal reuses it without re-resolving.
	if ord.PackagingID != nil {
		usages = append(usages, usage{
			ingredientID: *ord.PackagingID,
			quantity:     decimal.NewFromInt(1),
			label:        fmt.Sprintf("order %s: shipping container", ord.OrderNumber),
		})
	}

	return usages, nil
}

// expandRecipe turns one recipe reference into per-ingredient usages:
// grams sold × quantity × percentage / 100
func (f *stockFlow) expandRecipe(ctx context.Context, ord *order.Order, recipeID uuid.UUID, version int, format string, quantity decimal.Decimal, label string) ([]usage, error) {
	rv, err := f.recipeSvc.ResolveVersion(ctx, ord.OrgID, recipeID, version)
	if err != nil {
		return nil, err
	}
	grams, err := catalog.ParseFormatGrams(format)
	if err != nil {
		return nil, err
	}
	usages := make([]usage, 0, len(rv.Composition))
	for _, line := range rv.Composition {
		usages = append(usages, usage{
			ingredientID: line.IngredientID,
			quantity:     grams.Mul(quantity).Mul(line.Percentage).Div(oneHundredFlow),
			label:        fmt.Sprintf("order %s: %s v%d", ord.OrderNumber, label, rv.VersionNumber),
		})
	}
	return usages, nil
}

var oneHundredFlow = decimal.NewFromInt(100)

// deduct records a negative sale movement per expanded usage. Runs inside
// the order's transaction scope; a failure rolls the whole order back.
func (f *stockFlow) deduct(ctx context.Context, repos TransactionalRepositories, ord *order.Order) error {
	usages, err := f.expand(ctx, ord)
	if err != nil {
		return err
	}
	for _, u := range usages {
		if err := f.apply(ctx, repos, ord, u, inventory.MovementTypeSale, u.quantity.Neg()); err != nil {
			return err
		}
	}
	return nil
}

// revert mirrors deduction with positive adjustment movements, preserving
// the ledger's distinction between "returned" and "never sold". The state
// machine guarantees it runs exactly once per transition out of the
// fulfilled set.
func (f *stockFlow) revert(ctx context.Context, repos TransactionalRepositories, ord *order.Order) error {
	usages, err := f.expand(ctx, ord)
	if err != nil {
		return err
	}
	for _, u := range usages {
		if err := f.apply(ctx, repos, ord, u, inventory.MovementTypeAdjustment, u.quantity); err != nil {
			return err
		}
	}
	return nil
}

func (f *stockFlow) apply(ctx context.Context, repos TransactionalRepositories, ord *order.Order, u usage, movementType inventory.MovementType, delta decimal.Decimal) error {
	ing, err := repos.IngredientRepo().FindByID(ctx, ord.OrgID, u.ingredientID)
	if err != nil {
		return err
	}
	movement, err := inventory.NewStockMovement(
		ord.OrgID, ing.ID,
		movementType,
		inventory.ClassFor(ing.Category),
		inventory.MovementSourceOrder,
		delta,
		u.label,
	)
	if err != nil {
		return err
	}
	movement.WithSourceRef(ord.ID.String())
	return f.ledger.ApplyMovement(ctx, repos, ing, movement)
}
