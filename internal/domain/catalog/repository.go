package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// RecipeRepository defines persistence operations for recipe heads
type RecipeRepository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Recipe, error)
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Recipe, error)
	FindByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]Recipe, error)
	CountReferencingIngredient(ctx context.Context, orgID, ingredientID uuid.UUID) (int64, error)
	Save(ctx context.Context, recipe *Recipe) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// RecipeVersionRepository is the append-only store of recipe snapshots
type RecipeVersionRepository interface {
	Append(ctx context.Context, version *RecipeVersion) error
	FindByVersion(ctx context.Context, orgID, recipeID uuid.UUID, versionNumber int) (*RecipeVersion, error)
	FindAllForRecipe(ctx context.Context, orgID, recipeID uuid.UUID) ([]RecipeVersion, error)
}

// PackRepository defines persistence operations for pack heads
type PackRepository interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Pack, error)
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]Pack, error)
	Save(ctx context.Context, pack *Pack) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// PackVersionRepository is the append-only store of pack snapshots
type PackVersionRepository interface {
	Append(ctx context.Context, version *PackVersion) error
	FindByVersion(ctx context.Context, orgID, packID uuid.UUID, versionNumber int) (*PackVersion, error)
	FindAllForPack(ctx context.Context, orgID, packID uuid.UUID) ([]PackVersion, error)
}
