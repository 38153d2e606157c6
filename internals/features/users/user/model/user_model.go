package model

import (
	"time"

	"github.com/google/uuid"

	"teacha_backend/internals/constants"
)

// UserModel maps the users table. Email is globally unique; the tenant
// reference is nullable so platform-level accounts can exist without one.
type UserModel struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TenantID *uuid.UUID `gorm:"type:uuid;index" json:"tenant_id,omitempty"`
	Name     string     `gorm:"size:100;not null" json:"name"`
	Email    string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string     `gorm:"not null" json:"-"`
	GoogleID *string    `gorm:"size:255;uniqueIndex" json:"-"`
	Role     string     `gorm:"type:varchar(20);not null;default:'STUDENT'" json:"role"`
	IsActive bool       `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues fills defaults before persisting
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = constants.DefaultRole
	}
}
