package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/services"
)

type IngredientHandler struct {
	ingredientService services.IngredientService
}

func NewIngredientHandler(ingredientService services.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// POST /ingredients
func (ih *IngredientHandler) Create(c *gin.Context) {
	var req services.CreateIngredientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ingredient, err := ih.ingredientService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"ingredient": ingredient})
}

// GET /ingredients
// Optional query param: supplier.
func (ih *IngredientHandler) List(c *gin.Context) {
	filters := map[string]any{}
	if supplier := c.Query("supplier"); supplier != "" {
		filters["supplier"] = supplier
	}
	ingredients, err := ih.ingredientService.List(c.Request.Context(), filters)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ingredients": ingredients})
}

// GET /ingredients/:id
func (ih *IngredientHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	ingredient, err := ih.ingredientService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ingredient": ingredient})
}

// PATCH /ingredients/:id
func (ih *IngredientHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateIngredientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	ingredient, err := ih.ingredientService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ingredient": ingredient})
}

// DELETE /ingredients/:id
func (ih *IngredientHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := ih.ingredientService.Delete(c.Request.Context(), id); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
