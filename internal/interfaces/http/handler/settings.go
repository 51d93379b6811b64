package handler

import (
	"github.com/gin-gonic/gin"

	appsettings "github.com/reves-en-feuilles/backend/internal/application/settings"
)

// SettingsHandler exposes the per-organization fee schedule
type SettingsHandler struct {
	BaseHandler
	settings *appsettings.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settings *appsettings.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetSchedule handles GET /settings/fees. First read seeds the
// organization with default French micro-enterprise rates.
func (h *SettingsHandler) GetSchedule(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	resp, err := h.settings.GetSchedule(c.Request.Context(), orgID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateSchedule handles PUT /settings/fees
func (h *SettingsHandler) UpdateSchedule(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	var req appsettings.UpdateFeeScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.settings.UpdateSchedule(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
