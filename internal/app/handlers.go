package app

import (
	"github.com/platewise/platewise-backend/internal/http/handlers"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Tenant       *handlers.TenantHandler
	User         *handlers.UserHandler
	Location     *handlers.LocationHandler
	Allergen     *handlers.AllergenHandler
	Category     *handlers.CategoryHandler
	Ingredient   *handlers.IngredientHandler
	Recipe       *handlers.RecipeHandler
	Inventory    *handlers.InventoryHandler
	Label        *handlers.LabelHandler
	Subscription *handlers.SubscriptionHandler
	Admin        *handlers.AdminHandler
	ExpiryAlert  *handlers.ExpiryAlertHandler
	Webhook      *handlers.WebhookHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       handlers.NewHealthHandler(),
		Auth:         handlers.NewAuthHandler(services.Auth),
		Tenant:       handlers.NewTenantHandler(services.Tenant),
		User:         handlers.NewUserHandler(services.User),
		Location:     handlers.NewLocationHandler(services.Location),
		Allergen:     handlers.NewAllergenHandler(services.Allergen),
		Category:     handlers.NewCategoryHandler(services.Category),
		Ingredient:   handlers.NewIngredientHandler(services.Ingredient),
		Recipe:       handlers.NewRecipeHandler(services.Recipe),
		Inventory:    handlers.NewInventoryHandler(services.Inventory, services.ExpiryAlert),
		Label:        handlers.NewLabelHandler(services.Label),
		Subscription: handlers.NewSubscriptionHandler(services.Subscription, services.Usage),
		Admin:        handlers.NewAdminHandler(services.AdminSub),
		ExpiryAlert:  handlers.NewExpiryAlertHandler(services.ExpiryAlert),
		Webhook:      handlers.NewWebhookHandler(log, services.Subscription),
	}
}
