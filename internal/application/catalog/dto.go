package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/catalog"
)

// RecipeItemRequest is one composition line in a recipe request
type RecipeItemRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Percentage   decimal.Decimal `json:"percentage" binding:"required"`
}

// CreateRecipeRequest represents a request to create a recipe
type CreateRecipeRequest struct {
	Name        string                     `json:"name" binding:"required,max=120"`
	Composition []RecipeItemRequest        `json:"composition" binding:"required,dive"`
	Prices      map[string]decimal.Decimal `json:"prices"`
}

// UpdateRecipeRequest represents a recipe head edit. Nil fields are left
// untouched.
type UpdateRecipeRequest struct {
	Name        *string                    `json:"name" binding:"omitempty,max=120"`
	Composition []RecipeItemRequest        `json:"composition" binding:"omitempty,dive"`
	Prices      map[string]decimal.Decimal `json:"prices"`
	Status      *string                    `json:"status"`
}

// RecipeResponse represents a recipe head in API responses
type RecipeResponse struct {
	ID                  uuid.UUID                  `json:"id"`
	Name                string                     `json:"name"`
	Status              string                     `json:"status"`
	Composition         catalog.RecipeComposition  `json:"composition"`
	TotalIngredientCost decimal.Decimal            `json:"total_ingredient_cost"`
	Prices              map[string]decimal.Decimal `json:"prices"`
	Version             int                        `json:"version"`
	CreatedAt           time.Time                  `json:"created_at"`
	UpdatedAt           time.Time                  `json:"updated_at"`
}

// ToRecipeResponse maps a recipe head to its response form
func ToRecipeResponse(r *catalog.Recipe) *RecipeResponse {
	return &RecipeResponse{
		ID:                  r.ID,
		Name:                r.Name,
		Status:              string(r.Status),
		Composition:         r.Composition,
		TotalIngredientCost: r.TotalIngredientCost,
		Prices:              r.Prices,
		Version:             r.CompositionVersion,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// RecipeVersionResponse represents one immutable recipe snapshot
type RecipeVersionResponse struct {
	RecipeID            uuid.UUID                  `json:"recipe_id"`
	VersionNumber       int                        `json:"version_number"`
	Composition         catalog.RecipeComposition  `json:"composition"`
	TotalIngredientCost decimal.Decimal            `json:"total_ingredient_cost"`
	Prices              map[string]decimal.Decimal `json:"prices"`
	CreatedAt           time.Time                  `json:"created_at"`
}

// ToRecipeVersionResponse maps a recipe version to its response form
func ToRecipeVersionResponse(v *catalog.RecipeVersion) *RecipeVersionResponse {
	return &RecipeVersionResponse{
		RecipeID:            v.RecipeID,
		VersionNumber:       v.VersionNumber,
		Composition:         v.Composition,
		TotalIngredientCost: v.TotalIngredientCost,
		Prices:              v.Prices,
		CreatedAt:           v.CreatedAt,
	}
}

// PackItemRequest is one composition line in a pack request
type PackItemRequest struct {
	Kind        string          `json:"kind" binding:"required"`
	RecipeID    *uuid.UUID      `json:"recipe_id"`
	Format      string          `json:"format"`
	PackagingID *uuid.UUID      `json:"packaging_id"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

// CreatePackRequest represents a request to create a pack
type CreatePackRequest struct {
	Name        string            `json:"name" binding:"required,max=120"`
	Composition []PackItemRequest `json:"composition" binding:"required,dive"`
	Price       decimal.Decimal   `json:"price"`
}

// UpdatePackRequest represents a pack head edit
type UpdatePackRequest struct {
	Name        *string           `json:"name" binding:"omitempty,max=120"`
	Composition []PackItemRequest `json:"composition" binding:"omitempty,dive"`
	Price       *decimal.Decimal  `json:"price"`
	Status      *string           `json:"status"`
}

// PackResponse represents a pack head in API responses
type PackResponse struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	Status      string                  `json:"status"`
	Composition catalog.PackComposition `json:"composition"`
	TotalCost   decimal.Decimal         `json:"total_cost"`
	Price       decimal.Decimal         `json:"price"`
	Version     int                     `json:"version"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// ToPackResponse maps a pack head to its response form
func ToPackResponse(p *catalog.Pack) *PackResponse {
	return &PackResponse{
		ID:          p.ID,
		Name:        p.Name,
		Status:      string(p.Status),
		Composition: p.Composition,
		TotalCost:   p.TotalCost,
		Price:       p.Price,
		Version:     p.CompositionVersion,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PackVersionResponse represents one immutable pack snapshot
type PackVersionResponse struct {
	PackID        uuid.UUID               `json:"pack_id"`
	VersionNumber int                     `json:"version_number"`
	Composition   catalog.PackComposition `json:"composition"`
	TotalCost     decimal.Decimal         `json:"total_cost"`
	Price         decimal.Decimal         `json:"price"`
	CreatedAt     time.Time               `json:"created_at"`
}

// ToPackVersionResponse maps a pack version to its response form
func ToPackVersionResponse(v *catalog.PackVersion) *PackVersionResponse {
	return &PackVersionResponse{
		PackID:        v.PackID,
		VersionNumber: v.VersionNumber,
		Composition:   v.Composition,
		TotalCost:     v.TotalCost,
		Price:         v.Price,
		CreatedAt:     v.CreatedAt,
	}
}
