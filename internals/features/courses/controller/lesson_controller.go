package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"teacha_backend/internals/features/courses/dto"
	"teacha_backend/internals/features/courses/model"
	helper "teacha_backend/internals/helpers"
)

/* =========================================================
   LESSONS — nested under a course. Every handler first pins
   the course to the caller's tenant so a lesson ID from
   another tenant can never be reached.
========================================================= */

// GET /api/courses/:courseId/lessons
func (cc *CourseController) GetLessons(c *fiber.Ctx) error {
	course, err := cc.loadTenantCourse(c)
	if err != nil {
		return err
	}
	if course == nil {
		return nil // response already written
	}
	if course.CourseStatus != model.StatusPublished && !cc.canManageCourses(c) {
		return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
	}

	var lessons []model.LessonModel
	if err := cc.DB.
		Where("course_id = ?", course.CourseID).
		Order("lesson_order_index ASC, lesson_created_at ASC").
		Find(&lessons).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to get lessons")
	}

	return helper.JsonOK(c, fiber.Map{
		"lessons": dto.LessonsFromModels(lessons),
	})
}

// POST /api/courses/:courseId/lessons
func (cc *CourseController) CreateLesson(c *fiber.Ctx) error {
	course, err := cc.loadTenantCourse(c)
	if err != nil {
		return err
	}
	if course == nil {
		return nil
	}

	var input dto.CreateLessonRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}

	orderIndex := 0
	if input.OrderIndex != nil {
		orderIndex = *input.OrderIndex
	} else {
		// append to the end of the course
		var maxIndex *int
		if err := cc.DB.Model(&model.LessonModel{}).
			Where("course_id = ?", course.CourseID).
			Select("MAX(lesson_order_index)").
			Scan(&maxIndex).Error; err == nil && maxIndex != nil {
			orderIndex = *maxIndex + 1
		}
	}

	lesson := model.LessonModel{
		CourseID:         course.CourseID,
		LessonTitle:      input.Title,
		LessonContent:    input.Content,
		LessonVideoURL:   input.VideoURL,
		LessonOrderIndex: orderIndex,
		LessonDuration:   input.Duration,
	}

	if err := cc.DB.Create(&lesson).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create lesson")
	}

	return helper.JsonCreated(c, fiber.Map{
		"message": "Lesson created successfully",
		"lesson":  dto.LessonFromModel(&lesson),
	})
}

// PUT /api/courses/:courseId/lessons/:lessonId
func (cc *CourseController) UpdateLesson(c *fiber.Ctx) error {
	course, err := cc.loadTenantCourse(c)
	if err != nil {
		return err
	}
	if course == nil {
		return nil
	}
	lessonID, err := uuid.Parse(c.Params("lessonId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lesson ID")
	}

	var input dto.UpdateLessonRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var lesson model.LessonModel
	if err := cc.DB.First(&lesson, "lesson_id = ? AND course_id = ?", lessonID, course.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lesson not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update lesson")
	}

	if input.Title != nil {
		lesson.LessonTitle = *input.Title
	}
	if input.Content != nil {
		lesson.LessonContent = *input.Content
	}
	if input.VideoURL != nil {
		lesson.LessonVideoURL = input.VideoURL
	}
	if input.OrderIndex != nil {
		lesson.LessonOrderIndex = *input.OrderIndex
	}
	if input.Duration != nil {
		lesson.LessonDuration = *input.Duration
	}

	if err := cc.DB.Save(&lesson).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update lesson")
	}

	return helper.JsonOK(c, fiber.Map{
		"message": "Lesson updated successfully",
		"lesson":  dto.LessonFromModel(&lesson),
	})
}

// DELETE /api/courses/:courseId/lessons/:lessonId
func (cc *CourseController) DeleteLesson(c *fiber.Ctx) error {
	course, err := cc.loadTenantCourse(c)
	if err != nil {
		return err
	}
	if course == nil {
		return nil
	}
	lessonID, err := uuid.Parse(c.Params("lessonId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lesson ID")
	}

	result := cc.DB.Where("lesson_id = ? AND course_id = ?", lessonID, course.CourseID).Delete(&model.LessonModel{})
	if result.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete lesson")
	}
	if result.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Lesson not found")
	}

	return helper.JsonOK(c, fiber.Map{
		"message": "Lesson deleted successfully",
	})
}

// loadTenantCourse fetches the :courseId course scoped to the caller's
// tenant. On failure the response is already written and (nil, nil) or
// (nil, err) is returned; callers bail out on either.
func (cc *CourseController) loadTenantCourse(c *fiber.Ctx) (*model.CourseModel, error) {
	tenantID, err := cc.resolveTenantID(c)
	if err != nil {
		return nil, cc.renderTenantResolveError(c, err)
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var course model.CourseModel
	if err := cc.DB.First(&course, "course_id = ? AND tenant_id = ?", courseID, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to get course")
	}
	return &course, nil
}
