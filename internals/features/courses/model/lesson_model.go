package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonModel maps the lessons table. Ordering within a course is driven
// by lesson_order_index; duplicates are allowed and resolved by created_at.
type LessonModel struct {
	LessonID         uuid.UUID `gorm:"column:lesson_id;type:uuid;default:gen_random_uuid();primaryKey" json:"lesson_id"`
	CourseID         uuid.UUID `gorm:"column:course_id;type:uuid;not null;index" json:"course_id"`
	LessonTitle      string    `gorm:"column:lesson_title;type:varchar(200);not null" json:"lesson_title"`
	LessonContent    string    `gorm:"column:lesson_content;type:text" json:"lesson_content"`
	LessonVideoURL   *string   `gorm:"column:lesson_video_url;type:text" json:"lesson_video_url,omitempty"`
	LessonOrderIndex int       `gorm:"column:lesson_order_index;not null;default:0" json:"lesson_order_index"`
	LessonDuration   int       `gorm:"column:lesson_duration;not null;default:0" json:"lesson_duration"`

	LessonCreatedAt time.Time      `gorm:"column:lesson_created_at;autoCreateTime" json:"lesson_created_at"`
	LessonUpdatedAt time.Time      `gorm:"column:lesson_updated_at;autoUpdateTime" json:"lesson_updated_at"`
	LessonDeletedAt gorm.DeletedAt `gorm:"column:lesson_deleted_at" json:"lesson_deleted_at,omitempty"`
}

func (LessonModel) TableName() string {
	return "lessons"
}
