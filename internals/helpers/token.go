// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys populated by the auth middleware.
const (
	LocalsUserID    = "user_id"
	LocalsUserRole  = "user_role"
	LocalsUserEmail = "user_email"
	LocalsTenantID  = "tenant_id"
)

// GetUserIDFromLocals returns the authenticated user id, or an error when the
// request carries no identity.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals(LocalsUserID).(string)
	if !ok || v == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return uuid.Parse(v)
}

func GetUserRoleFromLocals(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalsUserRole).(string)
	return role
}

func GetUserEmailFromLocals(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalsUserEmail).(string)
	return email
}

// GetTenantIDFromLocals returns the tenant id carried in the token claims,
// or nil when the token has no tenant association.
func GetTenantIDFromLocals(c *fiber.Ctx) *uuid.UUID {
	v, ok := c.Locals(LocalsTenantID).(string)
	if !ok || v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

// GetRawAccessToken returns the bearer token from the Authorization header or
// the access_token cookie, without validating it.
func GetRawAccessToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth != "" {
		fields := strings.Fields(auth)
		if len(fields) >= 2 && strings.EqualFold(fields[0], "Bearer") {
			return strings.Trim(strings.TrimSpace(fields[1]), "\"'")
		}
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}
