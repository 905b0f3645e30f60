package app

import (
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/data/repos"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

type Repos struct {
	Tenant        repos.TenantRepo
	Location      repos.LocationRepo
	User          repos.UserRepo
	Allergen      repos.AllergenRepo
	Category      repos.CategoryRepo
	Ingredient    repos.IngredientRepo
	Recipe        repos.RecipeRepo
	InventoryItem repos.InventoryItemRepo
	Label         repos.LabelRepo
	Subscription  repos.SubscriptionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Tenant:        repos.NewTenantRepo(db, log),
		Location:      repos.NewLocationRepo(db, log),
		User:          repos.NewUserRepo(db, log),
		Allergen:      repos.NewAllergenRepo(db, log),
		Category:      repos.NewCategoryRepo(db, log),
		Ingredient:    repos.NewIngredientRepo(db, log),
		Recipe:        repos.NewRecipeRepo(db, log),
		InventoryItem: repos.NewInventoryItemRepo(db, log),
		Label:         repos.NewLabelRepo(db, log),
		Subscription:  repos.NewSubscriptionRepo(db, log),
	}
}
