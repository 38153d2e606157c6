package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "teacha_backend/internals/features/courses/model"
	"teacha_backend/internals/features/enrollments/dto"
	"teacha_backend/internals/features/enrollments/model"
	userModel "teacha_backend/internals/features/users/user/model"
	helper "teacha_backend/internals/helpers"
)

var validate = validator.New()

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

/* =========================================================
   ENROLL — POST /api/enrollments
   Self-service: the caller enrolls themselves. The course
   must be published and belong to the caller's tenant.
========================================================= */

func (ec *EnrollmentController) Enroll(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var input dto.EnrollRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}
	courseID, err := uuid.Parse(input.CourseID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	tenantID, err := ec.resolveTenantID(c, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "User is not associated with a tenant")
	}

	var course courseModel.CourseModel
	if err := ec.DB.First(&course, "course_id = ? AND tenant_id = ?", courseID, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to enroll")
	}
	if course.CourseStatus != courseModel.StatusPublished {
		return helper.JsonError(c, fiber.StatusBadRequest, "Course is not available for enrollment")
	}

	enrollment := model.EnrollmentModel{
		UserID:   userID,
		CourseID: course.CourseID,
	}
	if err := ec.DB.Create(&enrollment).Error; err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Already enrolled in this course")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to enroll")
	}
	enrollment.Course = &course

	return helper.JsonCreated(c, fiber.Map{
		"message":    "Enrolled successfully",
		"enrollment": dto.FromModel(&enrollment),
	})
}

/* =========================================================
   LIST OWN — GET /api/enrollments
========================================================= */

func (ec *EnrollmentController) GetMyEnrollments(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var enrollments []model.EnrollmentModel
	if err := ec.DB.
		Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to get enrollments")
	}

	return helper.JsonOK(c, fiber.Map{
		"enrollments": dto.FromModels(enrollments),
	})
}

/* =========================================================
   PROGRESS — PUT /api/enrollments/:id/progress
   Own enrollment only. Reaching 100 stamps completed_at;
   moving back below 100 clears it.
========================================================= */

func (ec *EnrollmentController) UpdateProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	enrollmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid enrollment ID")
	}

	var input dto.UpdateProgressRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var enrollment model.EnrollmentModel
	if err := ec.DB.First(&enrollment, "enrollment_id = ? AND user_id = ?", enrollmentID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update progress")
	}

	enrollment.Progress = input.Progress
	if input.Progress == 100 {
		if enrollment.CompletedAt == nil {
			now := time.Now().UTC()
			enrollment.CompletedAt = &now
		}
	} else {
		enrollment.CompletedAt = nil
	}

	if err := ec.DB.Save(&enrollment).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update progress")
	}

	return helper.JsonOK(c, fiber.Map{
		"message":    "Progress updated successfully",
		"enrollment": dto.FromModel(&enrollment),
	})
}

func (ec *EnrollmentController) resolveTenantID(c *fiber.Ctx, userID uuid.UUID) (uuid.UUID, error) {
	if id := helper.GetTenantIDFromLocals(c); id != nil {
		return *id, nil
	}
	var user userModel.UserModel
	if err := ec.DB.Select("tenant_id").First(&user, "id = ?", userID).Error; err != nil {
		return uuid.Nil, err
	}
	if user.TenantID == nil {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return *user.TenantID, nil
}
