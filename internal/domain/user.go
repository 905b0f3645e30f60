package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// RoleSuperadmin is a platform operator role, not assignable through the
	// tenant-facing user endpoints.
	RoleSuperadmin = "superadmin"

	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index;column:tenant_id" json:"tenant_id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	FirstName string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"not null;column:last_name" json:"last_name"`
	Role      string    `gorm:"not null;default:'staff';column:role" json:"role"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}
