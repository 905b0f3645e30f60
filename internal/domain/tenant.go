package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tenant struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `gorm:"not null;column:name" json:"name"`
	ContactEmail string    `gorm:"not null;column:contact_email" json:"contact_email"`
	ContactPhone string    `gorm:"column:contact_phone" json:"contact_phone,omitempty"`
	Address      string    `gorm:"column:address" json:"address,omitempty"`
	IsActive     bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Tenant) TableName() string { return "tenant" }

type Location struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index;column:tenant_id" json:"tenant_id"`
	Name     string    `gorm:"not null;column:name" json:"name"`
	Address  string    `gorm:"column:address" json:"address,omitempty"`
	IsActive bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Location) TableName() string { return "location" }
