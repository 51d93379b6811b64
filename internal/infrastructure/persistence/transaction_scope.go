package persistence

import (
	"context"

	"gorm.io/gorm"

	appinventory "github.com/reves-en-feuilles/backend/internal/application/inventory"
	apporder "github.com/reves-en-feuilles/backend/internal/application/order"
	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/order"
)

// GormInventoryTransactionScope runs ledger mutations inside one GORM
// transaction: a movement append and the cached balance update commit or
// roll back together.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

type gormInventoryRepositories struct {
	tx *gorm.DB
}

// IngredientRepo returns the ingredient repository bound to the transaction
func (r *gormInventoryRepositories) IngredientRepo() inventory.IngredientRepository {
	return NewGormIngredientRepository(r.tx)
}

// MovementRepo returns the movement repository bound to the transaction
func (r *gormInventoryRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ appinventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*gormInventoryRepositories)(nil)

// GormOrderTransactionScope wraps an order lifecycle step in one GORM
// transaction. Its repositories also satisfy the inventory transactional
// set, so stock deduction and the order write share the transaction.
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormOrderRepositories{tx: tx})
	})
}

type gormOrderRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the order repository bound to the transaction
func (r *gormOrderRepositories) OrderRepo() order.Repository {
	return NewGormOrderRepository(r.tx)
}

// IngredientRepo returns the ingredient repository bound to the transaction
func (r *gormOrderRepositories) IngredientRepo() inventory.IngredientRepository {
	return NewGormIngredientRepository(r.tx)
}

// MovementRepo returns the movement repository bound to the transaction
func (r *gormOrderRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ apporder.TransactionScope = (*GormOrderTransactionScope)(nil)
var _ apporder.TransactionalRepositories = (*gormOrderRepositories)(nil)
