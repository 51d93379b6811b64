package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/reves-en-feuilles/backend/internal/application/inventory"
	apporder "github.com/reves-en-feuilles/backend/internal/application/order"
	"github.com/reves-en-feuilles/backend/internal/domain/order"
)

// OrderHandler exposes the order lifecycle. Confirming an order deducts
// stock once; reverting a fulfilled order restores it through mirror
// adjustments, so every handler here ends up in the movement ledger.
type OrderHandler struct {
	BaseHandler
	orders *apporder.OrderService
	ledger *appinventory.LedgerService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *apporder.OrderService, ledger *appinventory.LedgerService) *OrderHandler {
	return &OrderHandler{orders: orders, ledger: ledger}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	var req apporder.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.orders.CreateOrder(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// AddItem handles POST /orders/:id/items
func (h *OrderHandler) AddItem(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	var req apporder.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.orders.AddItem(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	resp, err := h.orders.GetOrder(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
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
	page, err := h.orders.ListOrders(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PUT /orders/:id. On a fulfilled order the service
// reverts the old deduction and re-deducts against the new item set.
func (h *OrderHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	var req apporder.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.orders.Update(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus handles PATCH /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	var req apporder.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.orders.UpdateStatus(c.Request.Context(), orgID, id, order.OrderStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Confirm handles POST /orders/:id/confirm
func (h *OrderHandler) Confirm(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	resp, err := h.orders.Confirm(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	resp, err := h.orders.Cancel(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	if err := h.orders.Delete(c.Request.Context(), orgID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListMovements handles GET /orders/:id/movements
func (h *OrderHandler) ListMovements(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	resp, err := h.ledger.MovementsForOrder(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
