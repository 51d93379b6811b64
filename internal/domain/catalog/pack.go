package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// PackItemKind discriminates pack composition lines
type PackItemKind string

const (
	PackItemRecipe    PackItemKind = "recipe"
	PackItemPackaging PackItemKind = "packaging"
)

// PackItem is one line of a pack composition: either a recipe in a given
// sellable format, or an explicit packaging ingredient. Recipe lines carry
// the recipe version pinned when the composition was saved, so deduction and
// reversal of historical orders expand against the right blend.
type PackItem struct {
	Kind          PackItemKind    `json:"kind"`
	RecipeID      *uuid.UUID      `json:"recipe_id,omitempty"`
	RecipeVersion int             `json:"recipe_version,omitempty"`
	Format        string          `json:"format,omitempty"` // sellable format, grams
	PackagingID   *uuid.UUID      `json:"packaging_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// Validate checks a single pack composition line
func (p PackItem) Validate() error {
	if !p.Quantity.IsPositive() {
		return shared.NewDomainError("INVALID_COMPOSITION", "Pack item quantity must be positive")
	}
	switch p.Kind {
	case PackItemRecipe:
		if p.RecipeID == nil || *p.RecipeID == uuid.Nil {
			return shared.NewDomainError("INVALID_COMPOSITION", "Recipe pack item has no recipe")
		}
		if p.Format == "" {
			return shared.NewDomainError("INVALID_COMPOSITION", "Recipe pack item has no format")
		}
		if p.RecipeVersion < 1 {
			return shared.NewDomainError("INVALID_COMPOSITION", "Recipe pack item has no pinned version")
		}
	case PackItemPackaging:
		if p.PackagingID == nil || *p.PackagingID == uuid.Nil {
			return shared.NewDomainError("INVALID_COMPOSITION", "Packaging pack item has no ingredient")
		}
	default:
		return shared.NewDomainError("INVALID_COMPOSITION",
			fmt.Sprintf("Unknown pack item kind %q", p.Kind))
	}
	return nil
}

// PackComposition is the full content of a pack
type PackComposition []PackItem

// Validate checks every line of the composition
func (c PackComposition) Validate() error {
	if len(c) == 0 {
		return shared.NewDomainError("INVALID_COMPOSITION", "Pack composition cannot be empty")
	}
	for _, item := range c {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Pack is the mutable head of a sellable bundle (gift box, discovery set).
// Follows the same head/version pattern as Recipe.
type Pack struct {
	shared.OrgAggregateRoot
	Name               string          `gorm:"type:varchar(120);not null"`
	Status             ComponentStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Composition        PackComposition `gorm:"serializer:json"`
	TotalCost          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price              decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CompositionVersion int             `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (Pack) TableName() string {
	return "packs"
}

// NewPack creates a new draft pack
func NewPack(orgID uuid.UUID, name string, composition PackComposition) (*Pack, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Pack name cannot be empty")
	}
	if err := composition.Validate(); err != nil {
		return nil, err
	}

	return &Pack{
		OrgAggregateRoot:   shared.NewOrgAggregateRoot(orgID),
		Name:               name,
		Status:             StatusDraft,
		Composition:        composition,
		TotalCost:          decimal.Zero,
		Price:              decimal.Zero,
		CompositionVersion: 1,
	}, nil
}

// SnapshotIfActive captures the pre-edit head into an immutable version
// record when the pack is ACTIVE, then bumps the head's version counter.
// Same contract as Recipe.SnapshotIfActive.
func (p *Pack) SnapshotIfActive() *PackVersion {
	if !snapshotsOnEdit(p.Status) {
		return nil
	}
	version := newPackVersion(p)
	p.CompositionVersion++
	return version
}

// SetComposition replaces the composition after validation
func (p *Pack) SetComposition(composition PackComposition) error {
	if err := composition.Validate(); err != nil {
		return err
	}
	p.Composition = composition
	p.Touch()
	return nil
}

// SetPrice sets the pack sale price
func (p *Pack) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Pack price cannot be negative")
	}
	p.Price = price
	p.Touch()
	return nil
}

// SetTotalCost stores the derived total cost
func (p *Pack) SetTotalCost(cost decimal.Decimal) {
	p.TotalCost = cost
	p.Touch()
}

// Rename changes the pack name
func (p *Pack) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Pack name cannot be empty")
	}
	p.Name = name
	p.Touch()
	return nil
}

// TransitionTo moves the pack to the target status
func (p *Pack) TransitionTo(target ComponentStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown component status")
	}
	if p.Status == target {
		return nil
	}
	if !p.Status.CanTransitionTo(target) {
		return shared.NewDomainError("ILLEGAL_TRANSITION",
			fmt.Sprintf("Cannot move pack from %s to %s", p.Status, target))
	}
	p.Status = target
	p.Touch()
	return nil
}

// PackVersion is an immutable snapshot of a pack head, keyed by
// (PackID, VersionNumber)
type PackVersion struct {
	shared.BaseEntity
	OrgID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	PackID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_pack_version,priority:1"`
	VersionNumber int             `gorm:"not null;uniqueIndex:idx_pack_version,priority:2"`
	Composition   PackComposition `gorm:"serializer:json"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (PackVersion) TableName() string {
	return "pack_versions"
}

func newPackVersion(p *Pack) *PackVersion {
	return &PackVersion{
		BaseEntity:    shared.NewBaseEntity(),
		OrgID:         p.OrgID,
		PackID:        p.ID,
		VersionNumber: p.CompositionVersion,
		Composition:   append(PackComposition(nil), p.Composition...),
		TotalCost:     p.TotalCost,
		Price:         p.Price,
	}
}

// VersionFromHead synthesizes a version view from the live head, for callers
// asking for the head's current version number
func (p *Pack) VersionFromHead() *PackVersion {
	return newPackVersion(p)
}
