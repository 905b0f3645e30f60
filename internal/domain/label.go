package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	LabelTypeExpiry      = "expiry"
	LabelTypePrep        = "prep"
	LabelTypeIngredients = "ingredients"
	LabelTypeAllergen    = "allergen"
)

// Label records one printable label. Rendering the artifact (barcode, PDF) is
// not this system's job; Content holds the data handed to the print pipeline.
// Monthly plan quotas count rows of this table by created_at.
type Label struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID        uuid.UUID  `gorm:"type:uuid;not null;index;column:tenant_id" json:"tenant_id"`
	RecipeID        *uuid.UUID `gorm:"type:uuid;index;column:recipe_id" json:"recipe_id,omitempty"`
	InventoryItemID *uuid.UUID `gorm:"type:uuid;index;column:inventory_item_id" json:"inventory_item_id,omitempty"`

	Type    string         `gorm:"not null;column:type" json:"type"`
	Content datatypes.JSON `gorm:"column:content" json:"content,omitempty"`

	PrintedBy uuid.UUID `gorm:"type:uuid;not null;column:printed_by" json:"printed_by"`
	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Label) TableName() string { return "label" }

func ValidLabelType(t string) bool {
	switch t {
	case LabelTypeExpiry, LabelTypePrep, LabelTypeIngredients, LabelTypeAllergen:
		return true
	}
	return false
}
