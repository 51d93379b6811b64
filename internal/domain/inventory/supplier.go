package inventory

import (
	"github.com/google/uuid"

	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// Supplier is a source of raw ingredients or packaging
type Supplier struct {
	shared.OrgAggregateRoot
	Name    string `gorm:"type:varchar(120);not null"`
	Contact string `gorm:"type:varchar(120)"`
	Email   string `gorm:"type:varchar(120)"`
	Notes   string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(orgID uuid.UUID, name string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	return &Supplier{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Name:             name,
	}, nil
}

// Update replaces the supplier contact details
func (s *Supplier) Update(name, contact, email, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	s.Name = name
	s.Contact = contact
	s.Email = email
	s.Notes = notes
	s.Touch()
	return nil
}
