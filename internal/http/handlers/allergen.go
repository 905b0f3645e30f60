package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/services"
)

type AllergenHandler struct {
	allergenService services.AllergenService
}

func NewAllergenHandler(allergenService services.AllergenService) *AllergenHandler {
	return &AllergenHandler{allergenService: allergenService}
}

// POST /allergens
func (ah *AllergenHandler) Create(c *gin.Context) {
	var req services.CreateAllergenInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	allergen, err := ah.allergenService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"allergen": allergen})
}

// GET /allergens
func (ah *AllergenHandler) List(c *gin.Context) {
	allergens, err := ah.allergenService.List(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"allergens": allergens})
}

// GET /allergens/:id
func (ah *AllergenHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	allergen, err := ah.allergenService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"allergen": allergen})
}

// PATCH /allergens/:id
func (ah *AllergenHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateAllergenInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	allergen, err := ah.allergenService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"allergen": allergen})
}

// DELETE /allergens/:id
func (ah *AllergenHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := ah.allergenService.Delete(c.Request.Context(), id); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
