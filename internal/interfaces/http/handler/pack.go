package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/reves-en-feuilles/backend/internal/application/catalog"
)

// PackHandler exposes pack heads and their version history
type PackHandler struct {
	BaseHandler
	packs *appcatalog.PackService
}

// NewPackHandler creates a new PackHandler
func NewPackHandler(packs *appcatalog.PackService) *PackHandler {
	return &PackHandler{packs: packs}
}

// Create handles POST /packs
func (h *PackHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	var req appcatalog.CreatePackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.packs.CreatePack(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /packs/:id
func (h *PackHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid pack id")
		return
	}
	var req appcatalog.UpdatePackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.packs.UpdatePack(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get handles GET /packs/:id
func (h *PackHandler) Get(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid pack id")
		return
	}
	resp, err := h.packs.GetPack(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /packs
func (h *PackHandler) List(c *gin.Context) {
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
	resp, err := h.packs.ListPacks(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /packs/:id
func (h *PackHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid pack id")
		return
	}
	if err := h.packs.DeletePack(c.Request.Context(), orgID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetVersion handles GET /packs/:id/versions/:version
func (h *PackHandler) GetVersion(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid pack id")
		return
	}
	version, err := strconv.Atoi(c.Param("version"))
	if err != nil {
		h.BadRequest(c, "Invalid version number")
		return
	}
	resp, err := h.packs.GetVersion(c.Request.Context(), orgID, id, version)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListVersions handles GET /packs/:id/versions
func (h *PackHandler) ListVersions(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid pack id")
		return
	}
	resp, err := h.packs.ListVersions(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
