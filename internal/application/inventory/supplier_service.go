package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/reves-en-feuilles/backend/internal/domain/inventory"
	"github.com/reves-en-feuilles/backend/internal/domain/shared"
)

// SupplierService handles supplier management
type SupplierService struct {
	supplierRepo   inventory.SupplierRepository
	ingredientRepo inventory.IngredientRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo inventory.SupplierRepository, ingredientRepo inventory.IngredientRepository) *SupplierService {
	return &SupplierService{
		supplierRepo:   supplierRepo,
		ingredientRepo: ingredientRepo,
	}
}

// CreateSupplier registers a supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, orgID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := inventory.NewSupplier(orgID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.Name, req.Contact, req.Email, req.Notes); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// UpdateSupplier replaces the supplier's contact details
func (s *SupplierService) UpdateSupplier(ctx context.Context, orgID, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.Name, req.Contact, req.Email, req.Notes); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// GetSupplier returns one supplier
func (s *SupplierService) GetSupplier(ctx context.Context, orgID, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// ListSuppliers returns all suppliers matching the filter
func (s *SupplierService) ListSuppliers(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]SupplierResponse, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = *ToSupplierResponse(&suppliers[i])
	}
	return responses, nil
}

// DeleteSupplier removes a supplier. Deletion is rejected while any
// ingredient still references it; callers archive the ingredients first.
func (s *SupplierService) DeleteSupplier(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(ctx, orgID, id); err != nil {
		return err
	}
	count, err := s.ingredientRepo.CountBySupplier(ctx, orgID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrDependencyInUse
	}
	return s.supplierRepo.Delete(ctx, orgID, id)
}
