// file: internals/features/enrollments/dto/enrollment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	courseDTO "teacha_backend/internals/features/courses/dto"
	"teacha_backend/internals/features/enrollments/model"
)

/* =========================================================
   REQUEST DTO
========================================================= */

type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
}

type UpdateProgressRequest struct {
	Progress int `json:"progress" validate:"min=0,max=100"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type EnrollmentResponse struct {
	ID          uuid.UUID                 `json:"id"`
	UserID      uuid.UUID                 `json:"user_id"`
	CourseID    uuid.UUID                 `json:"course_id"`
	Progress    int                       `json:"progress"`
	EnrolledAt  time.Time                 `json:"enrolled_at"`
	CompletedAt *time.Time                `json:"completed_at,omitempty"`
	Course      *courseDTO.CourseResponse `json:"course,omitempty"`
}

func FromModel(e *model.EnrollmentModel) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:          e.EnrollmentID,
		UserID:      e.UserID,
		CourseID:    e.CourseID,
		Progress:    e.Progress,
		EnrolledAt:  e.EnrolledAt,
		CompletedAt: e.CompletedAt,
	}
	if e.Course != nil {
		course := courseDTO.CourseFromModel(e.Course)
		resp.Course = &course
	}
	return resp
}

func FromModels(enrollments []model.EnrollmentModel) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		out = append(out, FromModel(&enrollments[i]))
	}
	return out
}
