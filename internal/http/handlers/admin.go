package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/services"
)

// AdminHandler serves the platform operator surface. The routes sit behind the
// superadmin role and the service re-checks it.
type AdminHandler struct {
	adminService services.AdminSubscriptionService
}

func NewAdminHandler(adminService services.AdminSubscriptionService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GET /admin/subscriptions
func (ah *AdminHandler) ListSubscriptions(c *gin.Context) {
	subs, err := ah.adminService.ListSubscriptions(c.Request.Context(), c.Query("plan"), c.Query("status"))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"results": len(subs), "subscriptions": subs})
}

// GET /admin/subscriptions/plan/:plan
func (ah *AdminHandler) ListSubscriptionsByPlan(c *gin.Context) {
	subs, err := ah.adminService.ListByPlan(c.Request.Context(), c.Param("plan"))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"results": len(subs), "subscriptions": subs})
}

// GET /admin/subscriptions/analytics
func (ah *AdminHandler) SubscriptionAnalytics(c *gin.Context) {
	analytics, err := ah.adminService.Analytics(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"analytics": analytics})
}
