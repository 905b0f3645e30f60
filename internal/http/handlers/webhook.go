package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
	"github.com/platewise/platewise-backend/internal/services"
)

// WebhookHandler receives payment provider callbacks. The route is mounted
// outside the authenticated group; providers do not carry user tokens.
type WebhookHandler struct {
	log                 *logger.Logger
	subscriptionService services.SubscriptionService
}

func NewWebhookHandler(baseLog *logger.Logger, subscriptionService services.SubscriptionService) *WebhookHandler {
	return &WebhookHandler{
		log:                 baseLog.With("handler", "webhook"),
		subscriptionService: subscriptionService,
	}
}

// POST /webhooks/payment
func (wh *WebhookHandler) Payment(c *gin.Context) {
	var event services.PaymentEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := wh.subscriptionService.HandlePaymentEvent(c.Request.Context(), event); err != nil {
		wh.log.Error("payment event handling failed",
			"event_type", event.Type,
			"tenant_id", event.TenantID,
			"error", err,
		)
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"received": true})
}
