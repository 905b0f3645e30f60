package domain

import (
	"time"

	"github.com/google/uuid"
)

type InventoryItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID     uuid.UUID  `gorm:"type:uuid;not null;index;column:tenant_id" json:"tenant_id"`
	LocationID   *uuid.UUID `gorm:"type:uuid;index;column:location_id" json:"location_id,omitempty"`
	IngredientID uuid.UUID  `gorm:"type:uuid;not null;index;column:ingredient_id" json:"ingredient_id"`

	BatchNumber string  `gorm:"column:batch_number" json:"batch_number,omitempty"`
	Quantity    float64 `gorm:"not null;column:quantity" json:"quantity"`
	Unit        string  `gorm:"not null;column:unit" json:"unit"`

	DeliveryDate time.Time `gorm:"not null;column:delivery_date" json:"delivery_date"`
	ExpiryDate   time.Time `gorm:"not null;index;column:expiry_date" json:"expiry_date"`

	StorageLocation string  `gorm:"column:storage_location" json:"storage_location,omitempty"`
	Supplier        string  `gorm:"column:supplier" json:"supplier,omitempty"`
	Cost            float64 `gorm:"column:cost" json:"cost,omitempty"`

	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null;column:created_by" json:"created_by"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (InventoryItem) TableName() string { return "inventory_item" }
