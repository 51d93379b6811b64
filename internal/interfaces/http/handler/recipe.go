package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/reves-en-feuilles/backend/internal/application/catalog"
)

// RecipeHandler exposes recipe heads and their version history
type RecipeHandler struct {
	BaseHandler
	recipes *appcatalog.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipes *appcatalog.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// Create handles POST /recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	var req appcatalog.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.recipes.CreateRecipe(c.Request.Context(), orgID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /recipes/:id. Editing an active recipe's composition
// or prices snapshots the pre-edit state as a new immutable version.
func (h *RecipeHandler) Update(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid recipe id")
		return
	}
	var req appcatalog.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	resp, err := h.recipes.UpdateRecipe(c.Request.Context(), orgID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get handles GET /recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid recipe id")
		return
	}
	resp, err := h.recipes.GetRecipe(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /recipes
func (h *RecipeHandler) List(c *gin.Context) {
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
	resp, err := h.recipes.ListRecipes(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid recipe id")
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), orgID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetVersion handles GET /recipes/:id/versions/:version
func (h *RecipeHandler) GetVersion(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid recipe id")
		return
	}
	version, err := strconv.Atoi(c.Param("version"))
	if err != nil {
		h.BadRequest(c, "Invalid version number")
		return
	}
	resp, err := h.recipes.GetVersion(c.Request.Context(), orgID, id, version)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListVersions handles GET /recipes/:id/versions
func (h *RecipeHandler) ListVersions(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization id")
		return
	}
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid recipe id")
		return
	}
	resp, err := h.recipes.ListVersions(c.Request.Context(), orgID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
