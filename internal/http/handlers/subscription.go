package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/services"
)

type SubscriptionHandler struct {
	subscriptionService services.SubscriptionService
	usageService        services.UsageService
}

func NewSubscriptionHandler(subscriptionService services.SubscriptionService, usageService services.UsageService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		usageService:        usageService,
	}
}

// POST /subscription
func (sh *SubscriptionHandler) Create(c *gin.Context) {
	var req struct {
		Plan            string `json:"plan"`
		PaymentMethodID string `json:"payment_method_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sub, err := sh.subscriptionService.Create(c.Request.Context(), req.Plan, req.PaymentMethodID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"subscription": sub})
}

// GET /subscription
func (sh *SubscriptionHandler) Get(c *gin.Context) {
	sub, err := sh.subscriptionService.GetForTenant(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"subscription": sub})
}

// PATCH /subscription/plan
func (sh *SubscriptionHandler) UpdatePlan(c *gin.Context) {
	var req struct {
		Plan string `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sub, err := sh.subscriptionService.UpdatePlan(c.Request.Context(), req.Plan)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"subscription": sub})
}

// DELETE /subscription
func (sh *SubscriptionHandler) Cancel(c *gin.Context) {
	if err := sh.subscriptionService.Cancel(c.Request.Context()); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /subscription/usage
func (sh *SubscriptionHandler) Usage(c *gin.Context) {
	summary, err := sh.usageService.GetSummary(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"usage": summary})
}
