package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"teacha_backend/internals/configs"
	"teacha_backend/internals/constants"
	courseModel "teacha_backend/internals/features/courses/model"
	"teacha_backend/internals/features/tenants/dto"
	"teacha_backend/internals/features/tenants/model"
	authService "teacha_backend/internals/features/users/auth/service"
	userDTO "teacha_backend/internals/features/users/user/dto"
	userModel "teacha_backend/internals/features/users/user/model"
	helper "teacha_backend/internals/helpers"
)

var validate = validator.New()

type TenantController struct {
	DB *gorm.DB
}

func NewTenantController(db *gorm.DB) *TenantController {
	return &TenantController{DB: db}
}

/* =========================================================
   SIGNUP — POST /api/tenants/signup
   Tenant and owner are created in one transaction: both
   succeed or neither persists.
========================================================= */

func (tc *TenantController) Signup(c *fiber.Ctx) error {
	var input dto.TenantSignupRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !helper.IsValidSlug(input.TenantSlug) {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", []helper.FieldError{
			{Field: "tenant_slug", Message: "Slug can only contain lowercase letters, numbers, and hyphens"},
		})
	}
	if input.Plan == "" {
		input.Plan = model.PlanFree
	}

	// advisory pre-checks; the unique constraints remain the source of truth
	var count int64
	if err := tc.DB.Model(&model.TenantModel{}).Where("tenant_slug = ?", input.TenantSlug).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register tenant")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Slug is already taken. Please choose a different one.")
	}
	if err := tc.DB.Model(&userModel.UserModel{}).Where("email = ?", input.OwnerEmail).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register tenant")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email is already registered. Please use a different email.")
	}

	passwordHash, err := authService.HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	settings, err := model.DefaultSettings(input.Plan).Encode()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register tenant")
	}

	tenant := model.TenantModel{
		TenantName:     input.TenantName,
		TenantSlug:     input.TenantSlug,
		TenantDomain:   input.Domain,
		TenantPlan:     input.Plan,
		TenantStatus:   model.StatusActive,
		TenantSettings: settings,
	}
	owner := userModel.UserModel{
		Name:     input.OwnerName,
		Email:    input.OwnerEmail,
		Password: passwordHash,
		Role:     constants.RoleTenantOwner,
		IsActive: true,
	}

	if err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		owner.TenantID = &tenant.TenantID
		return tx.Create(&owner).Error
	}); err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, signupConflictMessage(err))
		}
		log.Printf("[ERROR] tenant signup failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register tenant")
	}

	token, err := authService.IssueAccessToken(&owner)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign token")
	}

	publicURL := fmt.Sprintf("https://%s.%s", tenant.TenantSlug, configs.BaseDomain)
	if tenant.TenantDomain != nil {
		publicURL = *tenant.TenantDomain
	}

	return helper.JsonCreated(c, fiber.Map{
		"message":      "Tenant registered successfully",
		"tenant":       dto.FromModel(&tenant, false),
		"owner":        userDTO.FromModel(&owner),
		"token":        token,
		"dashboardUrl": fmt.Sprintf("https://%s.%s/dashboard", tenant.TenantSlug, configs.BaseDomain),
		"publicUrl":    publicURL,
	})
}

/* =========================================================
   CHECK SLUG — POST /api/tenants/check-slug
   Advisory only; the caller must re-check the suggestion.
========================================================= */

func (tc *TenantController) CheckSlug(c *fiber.Ctx) error {
	var input dto.CheckSlugRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !helper.IsValidSlug(input.Slug) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid slug format")
	}

	var count int64
	if err := tc.DB.Model(&model.TenantModel{}).Where("tenant_slug = ?", input.Slug).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check slug availability")
	}

	resp := fiber.Map{
		"available":  count == 0,
		"slug":       input.Slug,
		"suggestion": nil,
	}
	if count > 0 {
		resp["suggestion"] = helper.SuggestSlug(input.Slug)
	}
	return helper.JsonOK(c, resp)
}

/* =========================================================
   GET CURRENT — GET /api/tenants/current
========================================================= */

func (tc *TenantController) GetCurrent(c *fiber.Ctx) error {
	tenantID, err := tc.resolveTenantID(c)
	if err != nil {
		return tc.renderTenantResolveError(c, err)
	}

	var tenant model.TenantModel
	if err := tc.DB.
		Preload("Users").
		Preload("Courses").
		First(&tenant, "tenant_id = ?", tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tenant not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to get tenant info")
	}

	// stats are computed here from the loaded relations, not aggregated in SQL
	stats := dto.TenantStats{
		TotalUsers:   len(tenant.Users),
		TotalCourses: len(tenant.Courses),
	}
	for _, u := range tenant.Users {
		if u.Role == constants.RoleStudent {
			stats.TotalStudents++
		}
	}
	for _, course := range tenant.Courses {
		if course.CourseStatus == courseModel.StatusPublished {
			stats.PublishedCourses++
		}
	}

	return helper.JsonOK(c, fiber.Map{
		"tenant": dto.FromModel(&tenant, true),
		"stats":  stats,
	})
}

/* =========================================================
   UPDATE CURRENT — PUT /api/tenants/current
   Requires TENANT_OWNER or ADMIN (enforced by route).
========================================================= */

func (tc *TenantController) UpdateCurrent(c *fiber.Ctx) error {
	tenantID, err := tc.resolveTenantID(c)
	if err != nil {
		return tc.renderTenantResolveError(c, err)
	}

	var input dto.TenantUpdateRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var tenant model.TenantModel
	if err := tc.DB.First(&tenant, "tenant_id = ?", tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tenant not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update tenant")
	}

	if input.Name != nil {
		tenant.TenantName = *input.Name
	}
	if input.Domain != nil {
		tenant.TenantDomain = input.Domain
	}
	if input.Settings != nil {
		current, err := model.DecodeSettings(tenant.TenantSettings)
		if err != nil {
			log.Printf("[WARN] stored settings unreadable for tenant %s: %v", tenant.TenantID, err)
			current = model.TenantSettings{}
		}
		merged := current.Merge(input.Settings.ToSettings())
		encoded, err := merged.Encode()
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update tenant")
		}
		tenant.TenantSettings = encoded
	}

	if err := tc.DB.Save(&tenant).Error; err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Domain is already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update tenant")
	}

	return helper.JsonOK(c, fiber.Map{
		"message": "Tenant updated successfully",
		"tenant":  dto.FromModel(&tenant, true),
	})
}

/* =========================================================
   Helpers
========================================================= */

var (
	errNoIdentity = errors.New("no identity")
	errNoTenant   = errors.New("no tenant association")
)

// signupConflictMessage tells slug and email collisions apart by the
// violated constraint: the owner's email index can lose the same
// check-then-act race as the slug.
func signupConflictMessage(err error) string {
	if strings.Contains(err.Error(), "email") {
		return "Email is already registered. Please use a different email."
	}
	return "Slug is already taken. Please choose a different one."
}

// resolveTenantID takes the tenant from the token claims, falling back to
// the user row when the token predates the tenant association.
func (tc *TenantController) resolveTenantID(c *fiber.Ctx) (uuid.UUID, error) {
	if id := helper.GetTenantIDFromLocals(c); id != nil {
		return *id, nil
	}

	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return uuid.Nil, errNoIdentity
	}

	var user userModel.UserModel
	if err := tc.DB.Select("tenant_id").First(&user, "id = ?", userID).Error; err != nil {
		return uuid.Nil, errNoTenant
	}
	if user.TenantID == nil {
		return uuid.Nil, errNoTenant
	}
	return *user.TenantID, nil
}

func (tc *TenantController) renderTenantResolveError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errNoIdentity) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return helper.JsonError(c, fiber.StatusBadRequest, "User is not associated with a tenant")
}
