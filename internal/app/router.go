package app

import (
	"github.com/gin-gonic/gin"

	types "github.com/platewise/platewise-backend/internal/domain"
	"github.com/platewise/platewise-backend/internal/http/middleware"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers, mw Middleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Public
	router.GET("/healthcheck", h.Health.HealthCheck)
	router.POST("/auth/register", h.Auth.Register)
	router.POST("/auth/login", h.Auth.Login)
	router.POST("/webhooks/payment", h.Webhook.Payment)

	// Protected
	protected := router.Group("/")
	protected.Use(mw.Auth.RequireAuth())

	// Tenant
	protected.GET("/tenant", h.Tenant.Get)
	protected.PATCH("/tenant", mw.Auth.RequireRole(types.RoleAdmin), h.Tenant.Update)
	protected.DELETE("/tenant", mw.Auth.RequireRole(types.RoleAdmin), h.Tenant.Deactivate)

	// Users
	protected.POST("/users", mw.Limits.CheckUserLimit(), h.User.Create)
	protected.GET("/users", h.User.List)
	protected.GET("/users/:id", h.User.Get)
	protected.PATCH("/users/:id", h.User.Update)
	protected.DELETE("/users/:id", mw.Auth.RequireRole(types.RoleAdmin), h.User.Delete)

	// Locations
	protected.POST("/locations", mw.Limits.CheckLocationLimit(), h.Location.Create)
	protected.GET("/locations", h.Location.List)
	protected.GET("/locations/:id", h.Location.Get)
	protected.PATCH("/locations/:id", h.Location.Update)

	// Allergens
	protected.POST("/allergens", h.Allergen.Create)
	protected.GET("/allergens", h.Allergen.List)
	protected.GET("/allergens/:id", h.Allergen.Get)
	protected.PATCH("/allergens/:id", h.Allergen.Update)
	protected.DELETE("/allergens/:id", h.Allergen.Delete)

	// Categories
	protected.POST("/categories", h.Category.Create)
	protected.GET("/categories", h.Category.List)
	protected.GET("/categories/:id", h.Category.Get)
	protected.PATCH("/categories/:id", h.Category.Update)
	protected.DELETE("/categories/:id", h.Category.Delete)

	// Ingredients
	protected.POST("/ingredients", h.Ingredient.Create)
	protected.GET("/ingredients", h.Ingredient.List)
	protected.GET("/ingredients/:id", h.Ingredient.Get)
	protected.PATCH("/ingredients/:id", h.Ingredient.Update)
	protected.DELETE("/ingredients/:id", h.Ingredient.Delete)

	// Recipes
	protected.POST("/recipes", mw.Limits.CheckRecipeLimit(), h.Recipe.Create)
	protected.GET("/recipes", h.Recipe.List)
	protected.GET("/recipes/:id", h.Recipe.Get)
	protected.GET("/recipes/:id/allergens", h.Recipe.Allergens)
	protected.PATCH("/recipes/:id", h.Recipe.Update)
	protected.DELETE("/recipes/:id", h.Recipe.Delete)

	// Inventory, gated by plan feature
	inventory := protected.Group("/inventory")
	inventory.Use(mw.Limits.RequireFeature(types.FeatureInventoryManagement))
	inventory.POST("", h.Inventory.Create)
	inventory.GET("", h.Inventory.List)
	inventory.GET("/expiring", h.Inventory.Expiring)
	inventory.GET("/expired", h.Inventory.Expired)
	inventory.GET("/total", h.Inventory.Total)
	inventory.POST("/low-stock", h.Inventory.LowStock)
	inventory.GET("/:id", h.Inventory.Get)
	inventory.PATCH("/:id", h.Inventory.Update)
	inventory.POST("/:id/adjust", h.Inventory.AdjustQuantity)
	inventory.DELETE("/:id", h.Inventory.Delete)

	// Labels
	protected.POST("/labels", mw.Limits.CheckLabelLimit(), h.Label.Create)
	protected.GET("/labels", h.Label.List)
	protected.GET("/labels/:id", h.Label.Get)

	// Subscription
	protected.POST("/subscription", mw.Auth.RequireRole(types.RoleAdmin), h.Subscription.Create)
	protected.GET("/subscription", h.Subscription.Get)
	protected.PATCH("/subscription/plan", mw.Auth.RequireRole(types.RoleAdmin), h.Subscription.UpdatePlan)
	protected.DELETE("/subscription", mw.Auth.RequireRole(types.RoleAdmin), h.Subscription.Cancel)
	protected.GET("/subscription/usage", h.Subscription.Usage)

	// Platform operator surface
	admin := protected.Group("/admin")
	admin.Use(mw.Auth.RequireRole(types.RoleSuperadmin))
	admin.GET("/subscriptions", h.Admin.ListSubscriptions)
	admin.GET("/subscriptions/plan/:plan", h.Admin.ListSubscriptionsByPlan)
	admin.GET("/subscriptions/analytics", h.Admin.SubscriptionAnalytics)

	// Reports
	reports := protected.Group("/reports")
	reports.Use(mw.Limits.RequireFeature(types.FeatureAdvancedReporting))
	reports.GET("/expiry", h.ExpiryAlert.Report)

	return router
}
