package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

func ValidSeverity(severity string) bool {
	switch severity {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Allergen is a labeled substance-sensitivity category. System-level allergens
// (the regulatory set) have no tenant; tenants may define their own on top.
type Allergen struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID      *uuid.UUID `gorm:"type:uuid;index;column:tenant_id" json:"tenant_id,omitempty"`
	Name          string     `gorm:"not null;column:name" json:"name"`
	Description   string     `gorm:"column:description" json:"description,omitempty"`
	Severity      string     `gorm:"not null;default:'medium';column:severity" json:"severity"`
	IsSystemLevel bool       `gorm:"not null;default:false;column:is_system_level" json:"is_system_level"`
	CreatedBy     *uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Allergen) TableName() string { return "allergen" }

type MenuItemCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index;column:tenant_id" json:"tenant_id"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	SortOrder   int       `gorm:"not null;default:0;column:sort_order" json:"sort_order"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (MenuItemCategory) TableName() string { return "menu_item_category" }

type Ingredient struct {
	ID          uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID    uuid.UUID                   `gorm:"type:uuid;not null;index;column:tenant_id" json:"tenant_id"`
	Name        string                      `gorm:"not null;column:name" json:"name"`
	Description string                      `gorm:"column:description" json:"description,omitempty"`
	DefaultUnit string                      `gorm:"not null;column:default_unit" json:"default_unit"`
	Allergens   datatypes.JSONSlice[string] `gorm:"column:allergens" json:"allergens"`
	Supplier    string                      `gorm:"column:supplier" json:"supplier,omitempty"`
	CostPerUnit float64                     `gorm:"column:cost_per_unit" json:"cost_per_unit,omitempty"`
	IsActive    bool                        `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedBy   uuid.UUID                   `gorm:"type:uuid;column:created_by" json:"created_by"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Ingredient) TableName() string { return "ingredient" }
