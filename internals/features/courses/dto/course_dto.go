// file: internals/features/courses/dto/course_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"teacha_backend/internals/features/courses/model"
)

/* =========================================================
   REQUEST DTO
========================================================= */

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"omitempty,max=5000"`
	Price       float64 `json:"price" validate:"omitempty,gte=0"`
	Slug        string  `json:"slug" validate:"omitempty,min=3,max=200"`
}

// UpdateCourseRequest is a partial patch: nil means "leave alone".
type UpdateCourseRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
}

type CreateLessonRequest struct {
	Title      string  `json:"title" validate:"required,min=1,max=200"`
	Content    string  `json:"content" validate:"omitempty"`
	VideoURL   *string `json:"video_url,omitempty" validate:"omitempty,url"`
	OrderIndex *int    `json:"order_index,omitempty" validate:"omitempty,gte=0"`
	Duration   int     `json:"duration" validate:"omitempty,gte=0"`
}

type UpdateLessonRequest struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content    *string `json:"content,omitempty"`
	VideoURL   *string `json:"video_url,omitempty" validate:"omitempty,url"`
	OrderIndex *int    `json:"order_index,omitempty" validate:"omitempty,gte=0"`
	Duration   *int    `json:"duration,omitempty" validate:"omitempty,gte=0"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type CourseResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	LessonCount int       `json:"lesson_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type LessonResponse struct {
	ID         uuid.UUID `json:"id"`
	CourseID   uuid.UUID `json:"course_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	VideoURL   *string   `json:"video_url,omitempty"`
	OrderIndex int       `json:"order_index"`
	Duration   int       `json:"duration"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func CourseFromModel(course *model.CourseModel) CourseResponse {
	return CourseResponse{
		ID:          course.CourseID,
		TenantID:    course.TenantID,
		Title:       course.CourseTitle,
		Slug:        course.CourseSlug,
		Description: course.CourseDescription,
		Price:       course.CoursePrice,
		Status:      course.CourseStatus,
		LessonCount: len(course.Lessons),
		CreatedAt:   course.CourseCreatedAt,
		UpdatedAt:   course.CourseUpdatedAt,
	}
}

func CoursesFromModels(courses []model.CourseModel) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, CourseFromModel(&courses[i]))
	}
	return out
}

func LessonFromModel(lesson *model.LessonModel) LessonResponse {
	return LessonResponse{
		ID:         lesson.LessonID,
		CourseID:   lesson.CourseID,
		Title:      lesson.LessonTitle,
		Content:    lesson.LessonContent,
		VideoURL:   lesson.LessonVideoURL,
		OrderIndex: lesson.LessonOrderIndex,
		Duration:   lesson.LessonDuration,
		CreatedAt:  lesson.LessonCreatedAt,
		UpdatedAt:  lesson.LessonUpdatedAt,
	}
}

func LessonsFromModels(lessons []model.LessonModel) []LessonResponse {
	out := make([]LessonResponse, 0, len(lessons))
	for i := range lessons {
		out = append(out, LessonFromModel(&lessons[i]))
	}
	return out
}
