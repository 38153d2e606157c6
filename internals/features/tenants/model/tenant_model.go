package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	courseModel "teacha_backend/internals/features/courses/model"
	userModel "teacha_backend/internals/features/users/user/model"
)

// Plan tiers
const (
	PlanFree  = "free"
	PlanBasic = "basic"
	PlanPro   = "pro"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

func IsValidPlan(plan string) bool {
	return plan == PlanFree || plan == PlanBasic || plan == PlanPro
}

// TenantModel is the top-level aggregate: users and courses belong to it.
type TenantModel struct {
	TenantID     uuid.UUID      `gorm:"column:tenant_id;type:uuid;default:gen_random_uuid();primaryKey" json:"tenant_id"`
	TenantName   string         `gorm:"column:tenant_name;type:varchar(100);not null" json:"tenant_name"`
	TenantSlug   string         `gorm:"column:tenant_slug;type:varchar(50);uniqueIndex;not null" json:"tenant_slug"`
	TenantDomain *string        `gorm:"column:tenant_domain;type:varchar(255);uniqueIndex" json:"tenant_domain,omitempty"`
	TenantPlan   string         `gorm:"column:tenant_plan;type:varchar(10);not null;default:'free'" json:"tenant_plan"`
	TenantStatus string         `gorm:"column:tenant_status;type:varchar(20);not null;default:'active'" json:"tenant_status"`

	// serialized TenantSettings; decoded on read, re-encoded on write
	TenantSettings datatypes.JSON `gorm:"column:tenant_settings;type:jsonb;not null;default:'{}'" json:"-"`

	Users   []userModel.UserModel     `gorm:"foreignKey:TenantID;references:TenantID" json:"-"`
	Courses []courseModel.CourseModel `gorm:"foreignKey:TenantID;references:TenantID" json:"-"`

	TenantCreatedAt time.Time      `gorm:"column:tenant_created_at;autoCreateTime" json:"tenant_created_at"`
	TenantUpdatedAt time.Time      `gorm:"column:tenant_updated_at;autoUpdateTime" json:"tenant_updated_at"`
	TenantDeletedAt gorm.DeletedAt `gorm:"column:tenant_deleted_at" json:"tenant_deleted_at,omitempty"`
}

func (TenantModel) TableName() string {
	return "tenants"
}
