package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}
