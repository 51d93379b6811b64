package settings

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for fee schedules.
// Each organization holds exactly one row; Find returns ErrNotFound until
// the defaults are seeded.
type Repository interface {
	Find(ctx context.Context, orgID uuid.UUID) (*FeeSchedule, error)
	Save(ctx context.Context, schedule *FeeSchedule) error
}
