package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RecipeStatusDraft    = "draft"
	RecipeStatusActive   = "active"
	RecipeStatusArchived = "archived"
)

// RecipeIngredient is one line of a recipe's composition. Lines live inside
// the recipe row as an ordered jsonb array; order is visible on the recipe
// card and must survive round-trips untouched.
type RecipeIngredient struct {
	IngredientID     uuid.UUID `json:"ingredient_id"`
	Quantity         float64   `json:"quantity"`
	Unit             string    `json:"unit"`
	PreparationNotes string    `json:"preparation_notes,omitempty"`
}

type Recipe struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index;column:tenant_id" json:"tenant_id"`
	Name        string     `gorm:"not null;column:name" json:"name"`
	Description string     `gorm:"column:description" json:"description,omitempty"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index;column:category_id" json:"category_id,omitempty"`

	// Version counts published revisions. It starts at 1 and bumps only when
	// the recipe moves from a non-active status to active.
	Version int    `gorm:"not null;default:1;column:version" json:"version"`
	Status  string `gorm:"not null;default:'draft';index;column:status" json:"status"`

	Ingredients datatypes.JSONSlice[RecipeIngredient] `gorm:"column:ingredients" json:"ingredients"`
	// Allergens is derived state: the union of the resolved ingredients'
	// allergen labels as of the last write that touched the line list.
	Allergens datatypes.JSONSlice[string] `gorm:"column:allergens" json:"allergens"`

	PreparationInstructions string  `gorm:"column:preparation_instructions" json:"preparation_instructions,omitempty"`
	CookingInstructions     string  `gorm:"column:cooking_instructions" json:"cooking_instructions,omitempty"`
	ServingSize             float64 `gorm:"column:serving_size" json:"serving_size,omitempty"`
	ServingUnit             string  `gorm:"column:serving_unit" json:"serving_unit,omitempty"`
	SellPrice               float64 `gorm:"column:sell_price" json:"sell_price,omitempty"`

	IsActive  bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null;column:created_by" json:"created_by"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid;column:updated_by" json:"updated_by,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Recipe) TableName() string { return "recipe" }

func ValidRecipeStatus(status string) bool {
	switch status {
	case RecipeStatusDraft, RecipeStatusActive, RecipeStatusArchived:
		return true
	}
	return false
}
