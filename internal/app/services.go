package app

import (
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/pkg/logger"
	"github.com/platewise/platewise-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Tenant       services.TenantService
	User         services.UserService
	Location     services.LocationService
	Allergen     services.AllergenService
	Category     services.CategoryService
	Ingredient   services.IngredientService
	Recipe       services.RecipeService
	Inventory    services.InventoryService
	Label        services.LabelService
	Subscription services.SubscriptionService
	AdminSub     services.AdminSubscriptionService
	Usage        services.UsageService
	ExpiryAlert  services.ExpiryAlertService
	Seed         services.SeedService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	authService := services.NewAuthService(
		db, log,
		repos.User,
		repos.Tenant,
		repos.Subscription,
		repos.Category,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
	)

	subscriptionService := services.NewSubscriptionService(
		db, log,
		repos.Subscription,
		repos.Tenant,
		clients.Payment,
		clients.Email,
	)

	usageService := services.NewUsageService(
		log,
		subscriptionService,
		repos.User,
		repos.Location,
		repos.Recipe,
		repos.Label,
		clients.UsageCache,
	)

	resolver := services.NewIngredientResolver(repos.Ingredient)
	aggregator := services.NewAllergenAggregator(resolver, log)

	return Services{
		Auth:         authService,
		Tenant:       services.NewTenantService(db, log, repos.Tenant),
		User:         services.NewUserService(db, log, repos.User),
		Location:     services.NewLocationService(db, log, repos.Location),
		Allergen:     services.NewAllergenService(db, log, repos.Allergen),
		Category:     services.NewCategoryService(db, log, repos.Category),
		Ingredient:   services.NewIngredientService(db, log, repos.Ingredient),
		Recipe:       services.NewRecipeService(db, log, repos.Recipe, aggregator),
		Inventory:    services.NewInventoryService(db, log, repos.InventoryItem, repos.Ingredient, repos.Location),
		Label:        services.NewLabelService(db, log, repos.Label, repos.Recipe, repos.InventoryItem, usageService),
		Subscription: subscriptionService,
		AdminSub:     services.NewAdminSubscriptionService(db, log, repos.Subscription),
		Usage:        usageService,
		ExpiryAlert:  services.NewExpiryAlertService(log, repos.InventoryItem, repos.Ingredient, repos.Tenant, repos.Location),
		Seed:         services.NewSeedService(db, log, repos.Allergen),
	}
}
