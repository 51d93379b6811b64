package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appcatalog "github.com/reves-en-feuilles/backend/internal/application/catalog"
	appinventory "github.com/reves-en-feuilles/backend/internal/application/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/catalog"
	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/order"
	"github.com/reves-en-feuilles/backend/internal/domain/settings"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// OrderService drives the order lifecycle: item pricing at add time, stock
// deduction on entering the fulfilled set, reversal on leaving it, and the
// financial snapshot recomputation. All stock-touching transitions run in a
// single transaction around deduction, the financial write and the status
// write.
type OrderService struct {
	scope          TransactionScope
	orderRepo      order.Repository
	settingsRepo   settings.Repository
	ingredientRepo inventory.IngredientRepository
	recipeRepo     catalog.RecipeRepository
	packRepo       catalog.PackRepository
	recipeSvc      *appcatalog.RecipeService
	packSvc        *appcatalog.PackService
	resolver       *appcatalog.PackagingResolver
	flow           *stockFlow
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	scope TransactionScope,
	orderRepo order.Repository,
	settingsRepo settings.Repository,
	ingredientRepo inventory.IngredientRepository,
	recipeRepo catalog.RecipeRepository,
	packRepo catalog.PackRepository,
	recipeSvc *appcatalog.RecipeService,
	packSvc *appcatalog.PackService,
	resolver *appcatalog.PackagingResolver,
	ledger *appinventory.LedgerService,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		scope:          scope,
		orderRepo:      orderRepo,
		settingsRepo:   settingsRepo,
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		packRepo:       packRepo,
		recipeSvc:      recipeSvc,
		packSvc:        packSvc,
		resolver:       resolver,
		flow:           newStockFlow(ledger, recipeSvc, packSvc, resolver, logger),
		logger:         logger,
	}
}

// CreateOrder opens a draft order
func (s *OrderService) CreateOrder(ctx context.Context, orgID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	number := req.OrderNumber
	if number == "" {
		number = generateOrderNumber()
	}
	ord, err := order.NewOrder(orgID, number, req.Channel)
	if err != nil {
		return nil, err
	}
	ord.CustomerName = req.CustomerName
	ord.SetPackagingType(req.PackagingType)
	if err := ord.SetShipping(req.ShippingPrice, req.ShippingCost); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, ord); err != nil {
		return nil, err
	}
	return ToOrderResponse(ord), nil
}

func generateOrderNumber() string {
	return fmt.Sprintf("CMD-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]),
	)
}

// AddItem prices and freezes one line onto a draft order. The composition
// version, unit price and unit cost split are captured now and never follow
// later catalog edits.
func (s *OrderService) AddItem(ctx context.Context, orgID, orderID uuid.UUID, req AddItemRequest) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByID(ctx, orgID, orderID)
	if err != nil {
		return nil, err
	}
	item, err := s.priceItem(ctx, orgID, req)
	if err != nil {
		return nil, err
	}
	if err := ord.AddItem(*item); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, ord); err != nil {
		return nil, err
	}
	return ToOrderResponse(ord), nil
}

// priceItem builds a frozen order line against the current catalog state
func (s *OrderService) priceItem(ctx context.Context, orgID uuid.UUID, req AddItemRequest) (*order.Item, error) {
	kind := order.ItemKind(req.Kind)
	var (
		name              string
		version           int
		unitPrice         decimal.Decimal
		unitMaterialCost  decimal.Decimal
		unitPackagingCost decimal.Decimal
	)

	switch kind {
	case order.ItemRecipe:
		r, err := s.recipeRepo.FindByID(ctx, orgID, req.TargetID)
		if err != nil {
			return nil, err
		}
		grams, err := catalog.ParseFormatGrams(req.Format)
		if err != nil {
			return nil, err
		}
		name = r.Name
		version = r.CompositionVersion
		if p, ok := r.PriceForFormat(req.Format); ok {
			unitPrice = p
		}
		unitMaterialCost = r.TotalIngredientCost.Mul(grams)
		pkg, err := s.resolver.FindPackaging(ctx, orgID, req.Format, "")
		if err != nil {
			return nil, err
		}
		if pkg != nil {
			unitPackagingCost = pkg.WeightedAvgCost
		}

	case order.ItemPack:
		p, err := s.packRepo.FindByID(ctx, orgID, req.TargetID)
		if err != nil {
			return nil, err
		}
		name = p.Name
		version = p.CompositionVersion
		unitPrice = p.Price
		unitMaterialCost, unitPackagingCost, err = s.packCostSplit(ctx, orgID, p)
		if err != nil {
			return nil, err
		}

	case order.ItemAccessory:
		ing, err := s.ingredientRepo.FindByID(ctx, orgID, req.TargetID)
		if err != nil {
			return nil, err
		}
		name = ing.Name
		unitMaterialCost = ing.WeightedAvgCost

	default:
		return nil, shared.NewDomainError("INVALID_ITEM",
			fmt.Sprintf("Unknown order item kind %q", req.Kind))
	}

	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	item, err := order.NewItem(kind, req.TargetID, name, req.Format, req.Quantity)
	if err != nil {
		return nil, err
	}
	item.Freeze(version, unitPrice, unitMaterialCost, unitPackagingCost)
	return &item, nil
}

// packCostSplit separates a pack's cost into its material and packaging
// components, pricing recipe lines at their pinned versions
func (s *OrderService) packCostSplit(ctx context.Context, orgID uuid.UUID, p *catalog.Pack) (material, packaging decimal.Decimal, err error) {
	material, packaging = decimal.Zero, decimal.Zero
	costAt := s.recipeSvc.CostPerGramAt(ctx, orgID)
	for _, line := range p.Composition {
		switch line.Kind {
		case catalog.PackItemRecipe:
			perGram, err := costAt(*line.RecipeID, line.RecipeVersion)
			if err != nil {
				return decimal.Zero, decimal.Zero, err
			}
			lineCost, err := catalog.RecipeFormatCost(perGram, line.Format)
			if err != nil {
				return decimal.Zero, decimal.Zero, err
			}
			material = material.Add(lineCost.Mul(line.Quantity))
		case catalog.PackItemPackaging:
			ing, err := s.ingredientRepo.FindByID(ctx, orgID, *line.PackagingID)
			if err != nil {
				if shared.IsNotFound(err) {
					continue
				}
				return decimal.Zero, decimal.Zero, err
			}
			packaging = packaging.Add(ing.WeightedAvgCost.Mul(line.Quantity))
		}
	}
	return material, packaging, nil
}

// Confirm moves a draft order to PAID: financials recomputed, stock
// deducted per item at each item's frozen version, PaidAt stamped, one
// transaction. Re-confirming an already-PAID order is a warn-level no-op so
// retried calls never deduct twice.
func (s *OrderService) Confirm(ctx context.Context, orgID, orderID uuid.UUID) (*OrderResponse, error) {
	var ord *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		ord, err = repos.OrderRepo().FindByID(ctx, orgID, orderID)
		if err != nil {
			return err
		}
		if ord.Status == order.StatusPaid {
			s.logger.Warn("order already confirmed, skipping",
				zap.String("order_number", ord.OrderNumber))
			return nil
		}

		containerCost, err := s.pinShippingContainer(ctx, repos, ord)
		if err != nil {
			return err
		}
		schedule, err := s.feeSchedule(ctx, orgID)
		if err != nil {
			return err
		}
		ComputeFinancials(ord, schedule, containerCost)

		if err := ord.TransitionTo(order.StatusPaid); err != nil {
			return err
		}
		if err := s.flow.deduct(ctx, repos, ord); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, ord)
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(ord), nil
}

// pinShippingContainer resolves the order's shipping container and persists
// its id on the order so reversal never depends on name resolution again.
// Returns the container's unit cost, zero when none applies.
func (s *OrderService) pinShippingContainer(ctx context.Context, repos TransactionalRepositories, ord *order.Order) (decimal.Decimal, error) {
	if ord.PackagingID == nil && ord.PackagingType != "" {
		container, err := s.resolver.FindByTypeName(ctx, ord.OrgID, ord.PackagingType)
		if err != nil {
			return decimal.Zero, err
		}
		if container == nil {
			s.logger.Warn("no shipping container resolved",
				zap.String("order_number", ord.OrderNumber),
				zap.String("packaging_type", ord.PackagingType))
			return decimal.Zero, nil
		}
		ord.PinPackaging(container.ID)
	}
	if ord.PackagingID == nil {
		return decimal.Zero, nil
	}
	ing, err := repos.IngredientRepo().FindByID(ctx, ord.OrgID, *ord.PackagingID)
	if err != nil {
		return decimal.Zero, err
	}
	return ing.WeightedAvgCost, nil
}

func (s *OrderService) feeSchedule(ctx context.Context, orgID uuid.UUID) (*settings.FeeSchedule, error) {
	schedule, err := s.settingsRepo.Find(ctx, orgID)
	if err != nil {
		if shared.IsNotFound(err) {
			return settings.DefaultFeeSchedule(orgID), nil
		}
		return nil, err
	}
	return schedule, nil
}

// UpdateStatus transitions the order. Moves inside the fulfilled set touch
// no stock; leaving it reverts; entering it from DRAFT behaves like Confirm.
func (s *OrderService) UpdateStatus(ctx context.Context, orgID, orderID uuid.UUID, target order.OrderStatus) (*OrderResponse, error) {
	if target == order.StatusPaid {
		return s.Confirm(ctx, orgID, orderID)
	}

	var ord *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		ord, err = repos.OrderRepo().FindByID(ctx, orgID, orderID)
		if err != nil {
			return err
		}
		if ord.Status == target {
			s.logger.Warn("order already in requested status, skipping",
				zap.String("order_number", ord.OrderNumber),
				zap.String("status", string(target)))
			return nil
		}

		wasFulfilled := ord.IsFulfilled()
		if err := ord.TransitionTo(target); err != nil {
			return err
		}
		if wasFulfilled && !ord.IsFulfilled() {
			if err := s.flow.revert(ctx, repos, ord); err != nil {
				return err
			}
		}
		return repos.OrderRepo().Save(ctx, ord)
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(ord), nil
}

// Cancel cancels the order. Draft orders skip reversal since nothing was
// deducted; cancelling an already-cancelled order is a warn-level no-op;
// cancelling a SHIPPED order is rejected by the state machine.
func (s *OrderService) Cancel(ctx context.Context, orgID, orderID uuid.UUID) (*OrderResponse, error) {
	return s.UpdateStatus(ctx, orgID, orderID, order.StatusCancelled)
}

// Update replaces the order's items. For fulfilled orders the previously
// deducted stock is reverted first, items are re-priced against the current
// catalog, financials recomputed and stock re-deducted, all in one
// transaction, so quantities never double-count.
func (s *OrderService) Update(ctx context.Context, orgID, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	var ord *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		ord, err = repos.OrderRepo().FindByID(ctx, orgID, orderID)
		if err != nil {
			return err
		}

		fulfilled := ord.IsFulfilled()
		if fulfilled {
			if err := s.flow.revert(ctx, repos, ord); err != nil {
				return err
			}
		}

		items := make(order.Items, 0, len(req.Items))
		for _, itemReq := range req.Items {
			item, err := s.priceItem(ctx, orgID, itemReq)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}
		if err := ord.ReplaceItems(items); err != nil {
			return err
		}

		if req.ShippingPrice != nil || req.ShippingCost != nil {
			price, cost := ord.ShippingPrice, ord.ShippingCost
			if req.ShippingPrice != nil {
				price = *req.ShippingPrice
			}
			if req.ShippingCost != nil {
				cost = *req.ShippingCost
			}
			if err := ord.SetShipping(price, cost); err != nil {
				return err
			}
		}
		if req.ManualTotal != nil {
			if err := ord.SetManualTotal(*req.ManualTotal); err != nil {
				return err
			}
		}

		if fulfilled {
			containerCost, err := s.pinShippingContainer(ctx, repos, ord)
			if err != nil {
				return err
			}
			schedule, err := s.feeSchedule(ctx, orgID)
			if err != nil {
				return err
			}
			ComputeFinancials(ord, schedule, containerCost)
			if err := s.flow.deduct(ctx, repos, ord); err != nil {
				return err
			}
		}
		return repos.OrderRepo().Save(ctx, ord)
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(ord), nil
}

// Delete removes the order entirely. Fulfilled orders get their stock
// reverted first; the delete is hard, not a soft flag.
func (s *OrderService) Delete(ctx context.Context, orgID, orderID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ord, err := repos.OrderRepo().FindByID(ctx, orgID, orderID)
		if err != nil {
			return err
		}
		if ord.IsFulfilled() {
			if err := s.flow.revert(ctx, repos, ord); err != nil {
				return err
			}
		}
		return repos.OrderRepo().Delete(ctx, orgID, orderID)
	})
}

// GetOrder returns one order
func (s *OrderService) GetOrder(ctx context.Context, orgID, id uuid.UUID) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(ord), nil
}

// ListOrders returns a paginated order listing
func (s *OrderService) ListOrders(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *ToOrderResponse(&orders[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}
