package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/services"
)

type RecipeHandler struct {
	recipeService services.RecipeService
}

func NewRecipeHandler(recipeService services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// POST /recipes
func (rh *RecipeHandler) Create(c *gin.Context) {
	var req services.CreateRecipeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	recipe, err := rh.recipeService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"recipe": recipe})
}

// GET /recipes
// Optional query params: status, category_id, allergen.
func (rh *RecipeHandler) List(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		recipes, err := rh.recipeService.ListByStatus(c.Request.Context(), status)
		if err != nil {
			response.RespondFromError(c, err)
			return
		}
		response.RespondOK(c, gin.H{"recipes": recipes})
		return
	}
	if allergen := c.Query("allergen"); allergen != "" {
		recipes, err := rh.recipeService.ListByAllergen(c.Request.Context(), allergen)
		if err != nil {
			response.RespondFromError(c, err)
			return
		}
		response.RespondOK(c, gin.H{"recipes": recipes})
		return
	}
	if categoryID, ok := queryUUID(c, "category_id"); !ok {
		return
	} else if categoryID != nil {
		recipes, err := rh.recipeService.ListByCategory(c.Request.Context(), *categoryID)
		if err != nil {
			response.RespondFromError(c, err)
			return
		}
		response.RespondOK(c, gin.H{"recipes": recipes})
		return
	}

	recipes, err := rh.recipeService.List(c.Request.Context(), nil)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"recipes": recipes})
}

// GET /recipes/:id
func (rh *RecipeHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	recipe, err := rh.recipeService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"recipe": recipe})
}

// PATCH /recipes/:id
func (rh *RecipeHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateRecipeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	recipe, err := rh.recipeService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"recipe": recipe})
}

// DELETE /recipes/:id
func (rh *RecipeHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := rh.recipeService.Delete(c.Request.Context(), id); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /recipes/:id/allergens
func (rh *RecipeHandler) Allergens(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	recipe, err := rh.recipeService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	allergens := []string(recipe.Allergens)
	if allergens == nil {
		allergens = []string{}
	}
	response.RespondOK(c, gin.H{
		"recipe_id": recipe.ID,
		"status":    recipe.Status,
		"allergens": allergens,
	})
}
