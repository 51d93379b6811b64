package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/reves-en-feuilles/backend/internal/application/inventory"
)

// SupplierHandler exposes supplier CRUD
type SupplierHandler struct {
	BaseHandler
	suppliers *appinventory.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(suppliers *appinventory.SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

// Create handles POST /suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	var req appinventory.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.suppliers.CreateSupplier(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier id")
		return
	}
	var req appinventory.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.suppliers.UpdateSupplier(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get handles GET /suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier id")
		return
	}
	resp, err := h.suppliers.GetSupplier(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.suppliers.ListSuppliers(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /suppliers/:id. Suppliers still linked to
// ingredients are refused with DEPENDENCY_IN_USE.
func (h *SupplierHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier id")
		return
	}
	if err := h.suppliers.DeleteSupplier(c.Request.Context(), orgID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
