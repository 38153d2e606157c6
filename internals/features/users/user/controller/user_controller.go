package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"teacha_backend/internals/constants"
	authService "teacha_backend/internals/features/users/auth/service"
	"teacha_backend/internals/features/users/user/dto"
	"teacha_backend/internals/features/users/user/model"
	helper "teacha_backend/internals/helpers"
)

var validate = validator.New()

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

/* =========================================================
   LIST — GET /api/users
   Always scoped to the caller's tenant.
========================================================= */

func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	tenantID, err := uc.resolveTenantID(c)
	if err != nil {
		return uc.renderTenantResolveError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	query := uc.DB.Model(&model.UserModel{}).Where("tenant_id = ?", tenantID)
	if role := c.Query("role"); role != "" {
		if !constants.IsValidRole(role) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role")
		}
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to get users")
	}

	var users []model.UserModel
	if err := query.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to get users")
	}

	return helper.JsonOK(c, fiber.Map{
		"users":      dto.FromModels(users),
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

/* =========================================================
   DETAIL — GET /api/users/:id
========================================================= */

func (uc *UserController) GetUser(c *fiber.Ctx) error {
	tenantID, err := uc.resolveTenantID(c)
	if err != nil {
		return uc.renderTenantResolveError(c, err)
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ? AND tenant_id = ?", userID, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to get user")
	}

	return helper.JsonOK(c, fiber.Map{
		"user": dto.FromModel(&user),
	})
}

/* =========================================================
   CREATE — POST /api/users
   Requires TENANT_OWNER or ADMIN (enforced by route). The
   new user lands in the caller's tenant, never another one.
========================================================= */

func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	tenantID, err := uc.resolveTenantID(c)
	if err != nil {
		return uc.renderTenantResolveError(c, err)
	}

	var input dto.CreateUserRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}

	role := constants.DefaultRole
	if input.Role != nil {
		role = *input.Role
	}

	passwordHash, err := authService.HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := model.UserModel{
		TenantID: &tenantID,
		Name:     input.Name,
		Email:    input.Email,
		Password: passwordHash,
		Role:     role,
		IsActive: true,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "User with this email already exists")
		}
		log.Printf("[ERROR] create user failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.JsonCreated(c, fiber.Map{
		"message": "User created successfully",
		"user":    dto.FromModel(&user),
	})
}

/* =========================================================
   UPDATE — PUT /api/users/:id
   Admins and owners may update anyone in the tenant; other
   users may only update themselves, and never their role.
========================================================= */

func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	tenantID, err := uc.resolveTenantID(c)
	if err != nil {
		return uc.renderTenantResolveError(c, err)
	}
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	callerID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	isAdmin := uc.hasRole(c, constants.OwnerAndAdmin)
	if !isAdmin && callerID != targetID {
		return helper.JsonError(c, fiber.StatusForbidden, "You can only update your own profile")
	}

	var input dto.UpdateUserRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if input.Role != nil && !isAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Only admins may change roles")
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ? AND tenant_id = ?", targetID, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		if helper.IsDuplicateKeyErr(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "User with this email already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	return helper.JsonOK(c, fiber.Map{
		"message": "User updated successfully",
		"user":    dto.FromModel(&user),
	})
}

/* =========================================================
   DELETE — DELETE /api/users/:id
   Requires ADMIN (enforced by route). Self-deletion is
   rejected so a tenant can never admin itself out.
========================================================= */

func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	tenantID, err := uc.resolveTenantID(c)
	if err != nil {
		return uc.renderTenantResolveError(c, err)
	}
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	callerID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if callerID == targetID {
		return helper.JsonError(c, fiber.StatusBadRequest, "You cannot delete your own account")
	}

	result := uc.DB.Where("id = ? AND tenant_id = ?", targetID, tenantID).Delete(&model.UserModel{})
	if result.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	if result.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	return helper.JsonOK(c, fiber.Map{
		"message": "User deleted successfully",
	})
}

/* =========================================================
   Helpers
========================================================= */

var (
	errNoIdentity = errors.New("no identity")
	errNoTenant   = errors.New("no tenant association")
)

func (uc *UserController) resolveTenantID(c *fiber.Ctx) (uuid.UUID, error) {
	if id := helper.GetTenantIDFromLocals(c); id != nil {
		return *id, nil
	}

	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return uuid.Nil, errNoIdentity
	}

	var user model.UserModel
	if err := uc.DB.Select("tenant_id").First(&user, "id = ?", userID).Error; err != nil {
		return uuid.Nil, errNoTenant
	}
	if user.TenantID == nil {
		return uuid.Nil, errNoTenant
	}
	return *user.TenantID, nil
}

func (uc *UserController) renderTenantResolveError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errNoIdentity) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return helper.JsonError(c, fiber.StatusBadRequest, "User is not associated with a tenant")
}

func (uc *UserController) hasRole(c *fiber.Ctx, allowed []string) bool {
	role := helper.GetUserRoleFromLocals(c)
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
