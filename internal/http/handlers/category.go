package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/services"
)

type CategoryHandler struct {
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// POST /categories
func (ch *CategoryHandler) Create(c *gin.Context) {
	var req services.CreateCategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	category, err := ch.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"category": category})
}

// GET /categories
func (ch *CategoryHandler) List(c *gin.Context) {
	categories, err := ch.categoryService.List(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"categories": categories})
}

// GET /categories/:id
func (ch *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	category, err := ch.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"category": category})
}

// PATCH /categories/:id
func (ch *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateCategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	category, err := ch.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"category": category})
}

// DELETE /categories/:id
func (ch *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := ch.categoryService.Delete(c.Request.Context(), id); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
