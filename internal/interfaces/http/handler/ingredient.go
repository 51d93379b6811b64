package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/reves-en-feuilles/backend/internal/application/inventory"
)

// IngredientHandler exposes the ingredient registry and its stock ledger
type IngredientHandler struct {
	BaseHandler
	ledger *appinventory.LedgerService
}

// NewIngredientHandler creates a new IngredientHandler
func NewIngredientHandler(ledger *appinventory.LedgerService) *IngredientHandler {
	return &IngredientHandler{ledger: ledger}
}

// Create handles POST /ingredients
func (h *IngredientHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	var req appinventory.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.ledger.CreateIngredient(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /ingredients/:id
func (h *IngredientHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid ingredient id")
		return
	}
	var req appinventory.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.ledger.UpdateIngredient(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get handles GET /ingredients/:id
func (h *IngredientHandler) Get(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid ingredient id")
		return
	}
	resp, err := h.ledger.GetIngredient(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /ingredients
func (h *IngredientHandler) List(c *gin.Context) {
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
	page, err := h.ledger.ListIngredients(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListBelowThreshold handles GET /ingredients/alerts
func (h *IngredientHandler) ListBelowThreshold(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	resp, err := h.ledger.ListBelowThreshold(c.Request.Context(), orgID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Archive handles POST /ingredients/:id/archive
func (h *IngredientHandler) Archive(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid ingredient id")
		return
	}
	if err := h.ledger.ArchiveIngredient(c.Request.Context(), orgID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete handles DELETE /ingredients/:id
func (h *IngredientHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid ingredient id")
		return
	}
	if err := h.ledger.DeleteIngredient(c.Request.Context(), orgID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RecordMovement handles POST /movements
func (h *IngredientHandler) RecordMovement(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	var req appinventory.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.ledger.RecordMovement(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListMovements handles GET /ingredients/:id/movements
func (h *IngredientHandler) ListMovements(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid ingredient id")
		return
	}
	resp, err := h.ledger.MovementsFor(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecomputeStock handles POST /ingredients/:id/recompute-stock.
// It replays the ledger and repairs the cached balance if it drifted.
func (h *IngredientHandler) RecomputeStock(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid ingredient id")
		return
	}
	resp, err := h.ledger.RecomputeStock(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecomputeWAC handles POST /ingredients/:id/recompute-cost
func (h *IngredientHandler) RecomputeWAC(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid ingredient id")
		return
	}
	resp, err := h.ledger.RecomputeWAC(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
