package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/services"
)

type InventoryHandler struct {
	inventoryService services.InventoryService
	expiryService    services.ExpiryAlertService
}

func NewInventoryHandler(inventoryService services.InventoryService, expiryService services.ExpiryAlertService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		expiryService:    expiryService,
	}
}

// POST /inventory
func (ih *InventoryHandler) Create(c *gin.Context) {
	var req services.CreateInventoryItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := ih.inventoryService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"item": item})
}

// GET /inventory
// Optional query params: ingredient_id, location_id.
func (ih *InventoryHandler) List(c *gin.Context) {
	if ingredientID, ok := queryUUID(c, "ingredient_id"); !ok {
		return
	} else if ingredientID != nil {
		items, err := ih.inventoryService.ListByIngredient(c.Request.Context(), *ingredientID)
		if err != nil {
			response.RespondFromError(c, err)
			return
		}
		response.RespondOK(c, gin.H{"items": items})
		return
	}

	filters := map[string]any{}
	if locationID, ok := queryUUID(c, "location_id"); !ok {
		return
	} else if locationID != nil {
		filters["location_id"] = *locationID
	}
	items, err := ih.inventoryService.List(c.Request.Context(), filters)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

// GET /inventory/total?ingredient_id=...
// Sums active batches into the ingredient's default unit.
func (ih *InventoryHandler) Total(c *gin.Context) {
	ingredientID, ok := queryUUID(c, "ingredient_id")
	if !ok {
		return
	}
	if ingredientID == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("ingredient_id query parameter is required"))
		return
	}
	total, err := ih.inventoryService.TotalByIngredient(c.Request.Context(), *ingredientID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"total": total})
}

// GET /inventory/:id
func (ih *InventoryHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	item, err := ih.inventoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"item": item})
}

// PATCH /inventory/:id
func (ih *InventoryHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateInventoryItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := ih.inventoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"item": item})
}

// POST /inventory/:id/adjust
func (ih *InventoryHandler) AdjustQuantity(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Delta float64 `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := ih.inventoryService.AdjustQuantity(c.Request.Context(), id, req.Delta)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"item": item})
}

// POST /inventory/low-stock
// Body: {"thresholds": {"<ingredient_id>": <quantity>, ...}}.
func (ih *InventoryHandler) LowStock(c *gin.Context) {
	var req struct {
		Thresholds map[string]float64 `json:"thresholds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	thresholds := make(map[uuid.UUID]float64, len(req.Thresholds))
	for raw, quantity := range req.Thresholds {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid ingredient id %q", raw))
			return
		}
		thresholds[id] = quantity
	}
	items, err := ih.inventoryService.LowStockItems(c.Request.Context(), thresholds)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

// DELETE /inventory/:id
func (ih *InventoryHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := ih.inventoryService.Delete(c.Request.Context(), id); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /inventory/expiring
// Optional query params: days_threshold, location_id.
func (ih *InventoryHandler) Expiring(c *gin.Context) {
	days := 3
	if raw := c.Query("days_threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		days = parsed
	}
	locationID, ok := queryUUID(c, "location_id")
	if !ok {
		return
	}
	items, err := ih.expiryService.ExpiringItems(c.Request.Context(), days, locationID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

// GET /inventory/expired
// Optional query param: location_id.
func (ih *InventoryHandler) Expired(c *gin.Context) {
	locationID, ok := queryUUID(c, "location_id")
	if !ok {
		return
	}
	items, err := ih.expiryService.ExpiredItems(c.Request.Context(), locationID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}
