package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/services"
)

type LabelHandler struct {
	labelService services.LabelService
}

func NewLabelHandler(labelService services.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// POST /labels
func (lh *LabelHandler) Create(c *gin.Context) {
	var req services.CreateLabelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	label, err := lh.labelService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"label": label})
}

// GET /labels
// Optional query params: type, recipe_id.
func (lh *LabelHandler) List(c *gin.Context) {
	filters := map[string]any{}
	if labelType := c.Query("type"); labelType != "" {
		filters["type"] = labelType
	}
	if recipeID, ok := queryUUID(c, "recipe_id"); !ok {
		return
	} else if recipeID != nil {
		filters["recipe_id"] = *recipeID
	}
	labels, err := lh.labelService.List(c.Request.Context(), filters)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"labels": labels})
}

// GET /labels/:id
func (lh *LabelHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	label, err := lh.labelService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"label": label})
}
