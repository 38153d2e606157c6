package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"teacha_backend/internals/constants"
	"teacha_backend/internals/features/courses/dto"
	"teacha_backend/internals/features/courses/model"
	userModel "teacha_backend/internals/features/users/user/model"
	helper "teacha_backend/internals/helpers"
)

var validate = validator.New()

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

/* =========================================================
   LIST — GET /api/courses
   Students only see published courses; instructors and above
   see every course of their tenant.
========================================================= */

func (cc *CourseController) GetCourses(c *fiber.Ctx) error {
	tenantID, err := cc.resolveTenantID(c)
	if err != nil {
		return cc.renderTenantResolveError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	query := cc.DB.Model(&model.CourseModel{}).Where("tenant_id = ?", tenantID)
	if !cc.canManageCourses(c) {
		query = query.Where("course_status = ?", model.StatusPublished)
	}
	if status := c.Query("status"); status != "" && cc.canManageCourses(c) {
		if !model.IsValidCourseStatus(status) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course status")
		}
		query = query.Where("course_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to get courses")
	}

	var courses []model.CourseModel
	if err := query.
		Order("course_created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to get courses")
	}

	return helper.JsonOK(c, fiber.Map{
		"courses":    dto.CoursesFromModels(courses),
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

/* =========================================================
   DETAIL — GET /api/courses/:id
========================================================= */

func (cc *CourseController) GetCourse(c *fiber.Ctx) error {
	tenantID, err := cc.resolveTenantID(c)
	if err != nil {
		return cc.renderTenantResolveError(c, err)
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var course model.CourseModel
	if err := cc.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_order_index ASC, lesson_created_at ASC")
		}).
		First(&course, "course_id = ? AND tenant_id = ?", courseID, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to get course")
	}

	// drafts stay invisible to students
	if course.CourseStatus != model.StatusPublished && !cc.canManageCourses(c) {
		return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
	}

	return helper.JsonOK(c, fiber.Map{
		"course":  dto.CourseFromModel(&course),
		"lessons": dto.LessonsFromModels(course.Lessons),
	})
}

/* =========================================================
   CREATE — POST /api/courses
   Requires INSTRUCTOR or above (enforced by route). New
   courses start as DRAFT; the slug defaults to one derived
   from the title.
========================================================= */

func (cc *CourseController) CreateCourse(c *fiber.Ctx) error {
	tenantID, err := cc.resolveTenantID(c)
	if err != nil {
		return cc.renderTenantResolveError(c, err)
	}

	var input dto.CreateCourseRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}

	slug := input.Slug
	if slug == "" {
		slug = helper.GenerateSlug(input.Title)
	}
	if !helper.IsValidSlug(slug) {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", []helper.FieldError{
			{Field: "slug", Message: "Slug can only contain lowercase letters, numbers, and hyphens"},
		})
	}

	course := model.CourseModel{
		TenantID:          tenantID,
		CourseTitle:       input.Title,
		CourseSlug:        slug,
		CourseDescription: input.Description,
		CoursePrice:       input.Price,
		CourseStatus:      model.StatusDraft,
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "A course with this slug already exists")
		}
		log.Printf("[ERROR] create course failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create course")
	}

	return helper.JsonCreated(c, fiber.Map{
		"message": "Course created successfully",
		"course":  dto.CourseFromModel(&course),
	})
}

/* =========================================================
   UPDATE — PUT /api/courses/:id
========================================================= */

func (cc *CourseController) UpdateCourse(c *fiber.Ctx) error {
	tenantID, err := cc.resolveTenantID(c)
	if err != nil {
		return cc.renderTenantResolveError(c, err)
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	var input dto.UpdateCourseRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var course model.CourseModel
	if err := cc.DB.First(&course, "course_id = ? AND tenant_id = ?", courseID, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update course")
	}

	if input.Title != nil {
		course.CourseTitle = *input.Title
	}
	if input.Description != nil {
		course.CourseDescription = *input.Description
	}
	if input.Price != nil {
		course.CoursePrice = *input.Price
	}
	if input.Status != nil {
		course.CourseStatus = *input.Status
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update course")
	}

	return helper.JsonOK(c, fiber.Map{
		"message": "Course updated successfully",
		"course":  dto.CourseFromModel(&course),
	})
}

/* =========================================================
   DELETE — DELETE /api/courses/:id (soft delete)
========================================================= */

func (cc *CourseController) DeleteCourse(c *fiber.Ctx) error {
	tenantID, err := cc.resolveTenantID(c)
	if err != nil {
		return cc.renderTenantResolveError(c, err)
	}
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course ID")
	}

	result := cc.DB.Where("course_id = ? AND tenant_id = ?", courseID, tenantID).Delete(&model.CourseModel{})
	if result.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete course")
	}
	if result.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
	}

	return helper.JsonOK(c, fiber.Map{
		"message": "Course deleted successfully",
	})
}

/* =========================================================
   Helpers
========================================================= */

var (
	errNoIdentity = errors.New("no identity")
	errNoTenant   = errors.New("no tenant association")
)

func (cc *CourseController) resolveTenantID(c *fiber.Ctx) (uuid.UUID, error) {
	if id := helper.GetTenantIDFromLocals(c); id != nil {
		return *id, nil
	}

	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return uuid.Nil, errNoIdentity
	}

	var user userModel.UserModel
	if err := cc.DB.Select("tenant_id").First(&user, "id = ?", userID).Error; err != nil {
		return uuid.Nil, errNoTenant
	}
	if user.TenantID == nil {
		return uuid.Nil, errNoTenant
	}
	return *user.TenantID, nil
}

func (cc *CourseController) renderTenantResolveError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errNoIdentity) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return helper.JsonError(c, fiber.StatusBadRequest, "User is not associated with a tenant")
}

func (cc *CourseController) canManageCourses(c *fiber.Ctx) bool {
	role := helper.GetUserRoleFromLocals(c)
	for _, r := range constants.InstructorAndAbove {
		if role == r {
			return true
		}
	}
	return false
}
