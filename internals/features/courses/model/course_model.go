package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course lifecycle
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

func IsValidCourseStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// CourseModel maps the courses table. The slug is unique within a tenant,
// not globally: the same slug may exist under two different tenants.
type CourseModel struct {
	CourseID          uuid.UUID `gorm:"column:course_id;type:uuid;default:gen_random_uuid();primaryKey" json:"course_id"`
	TenantID          uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:uq_courses_tenant_slug" json:"tenant_id"`
	CourseTitle       string    `gorm:"column:course_title;type:varchar(200);not null" json:"course_title"`
	CourseSlug        string    `gorm:"column:course_slug;type:varchar(200);not null;uniqueIndex:uq_courses_tenant_slug" json:"course_slug"`
	CourseDescription string    `gorm:"column:course_description;type:text" json:"course_description"`
	CoursePrice       float64   `gorm:"column:course_price;type:numeric(10,2);not null;default:0" json:"course_price"`
	CourseStatus      string    `gorm:"column:course_status;type:varchar(20);not null;default:'DRAFT'" json:"course_status"`

	Lessons []LessonModel `gorm:"foreignKey:CourseID;references:CourseID" json:"-"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string {
	return "courses"
}
