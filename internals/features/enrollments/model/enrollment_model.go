package model

import (
	"time"

	"github.com/google/uuid"

	courseModel "teacha_backend/internals/features/courses/model"
)

// EnrollmentModel maps the enrollments table. A user enrolls in a course
// at most once; the composite unique index backs that guarantee.
type EnrollmentModel struct {
	EnrollmentID uuid.UUID `gorm:"column:enrollment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"enrollment_id"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_enrollments_user_course" json:"user_id"`
	CourseID     uuid.UUID `gorm:"column:course_id;type:uuid;not null;uniqueIndex:uq_enrollments_user_course" json:"course_id"`

	// Progress is a percentage, 0..100. CompletedAt is set when it reaches 100.
	Progress    int        `gorm:"column:progress;not null;default:0" json:"progress"`
	EnrolledAt  time.Time  `gorm:"column:enrolled_at;autoCreateTime" json:"enrolled_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	Course *courseModel.CourseModel `gorm:"foreignKey:CourseID;references:CourseID" json:"-"`
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}
