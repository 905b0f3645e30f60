package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/platewise-backend/internal/http/response"
	"github.com/platewise/platewise-backend/internal/pkg/ctxutil"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
	"github.com/platewise/platewise-backend/internal/services"
)

// TenantLimitMiddleware gates mutating routes on the tenant's subscription.
// It runs after RequireAuth, so the tenant is always in the request context.
type TenantLimitMiddleware struct {
	log   *logger.Logger
	usage services.UsageService
}

func NewTenantLimitMiddleware(log *logger.Logger, usage services.UsageService) *TenantLimitMiddleware {
	return &TenantLimitMiddleware{
		log:   log.With("middleware", "tenant_limits"),
		usage: usage,
	}
}

func (tm *TenantLimitMiddleware) CheckUserLimit() gin.HandlerFunc {
	return tm.checkQuota("users", tm.usage.CheckUserLimit)
}

func (tm *TenantLimitMiddleware) CheckLocationLimit() gin.HandlerFunc {
	return tm.checkQuota("locations", tm.usage.CheckLocationLimit)
}

func (tm *TenantLimitMiddleware) CheckRecipeLimit() gin.HandlerFunc {
	return tm.checkQuota("recipes", tm.usage.CheckRecipeLimit)
}

func (tm *TenantLimitMiddleware) CheckLabelLimit() gin.HandlerFunc {
	return tm.checkQuota("labels", tm.usage.CheckLabelLimit)
}

// RequireFeature blocks the route unless the plan carries the boolean flag.
func (tm *TenantLimitMiddleware) RequireFeature(featureKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "unauthorized", "code": "unauthorized"},
			})
			return
		}
		ok, err := tm.usage.CheckFeatureAccess(c.Request.Context(), rd.TenantID, featureKey)
		if err != nil {
			response.RespondFromError(c, err)
			c.Abort()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "plan does not include " + featureKey, "code": "feature_not_available"},
			})
			return
		}
		c.Next()
	}
}

func (tm *TenantLimitMiddleware) checkQuota(resource string, check func(context.Context, uuid.UUID) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "unauthorized", "code": "unauthorized"},
			})
			return
		}
		ok, err := check(c.Request.Context(), rd.TenantID)
		if err != nil {
			response.RespondFromError(c, err)
			c.Abort()
			return
		}
		if !ok {
			tm.log.Info("plan limit reached", "tenant_id", rd.TenantID, "resource", resource)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "plan limit reached for " + resource, "code": "limit_reached"},
			})
			return
		}
		c.Next()
	}
}
