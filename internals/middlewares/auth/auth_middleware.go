// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"teacha_backend/internals/configs"
	authModel "teacha_backend/internals/features/users/auth/model"
	helper "teacha_backend/internals/helpers"
)

const expirySkew = 30 * time.Second

// AuthMiddleware rejects the request with 401 unless it carries a valid,
// non-blacklisted access token. On success the claims are stored in Locals
// for the rest of the request.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Valid token required")
		}

		// blacklist check, once per request
		if db != nil && c.Locals("token_checked") == nil {
			var existing authModel.TokenBlacklist
			if err := db.Where("token = ? AND deleted_at IS NULL", tokenString).First(&existing).Error; err == nil {
				log.Println("[WARN] token found in blacklist")
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Valid token required")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("[ERROR] DB error on blacklist check:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		claims, err := parseAndValidate(tokenString)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Valid token required")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Valid token required")
		}
		c.Locals(helper.LocalsUserID, userID.String())
		storeClaimsToLocals(c, claims)

		return c.Next()
	}
}

// OptionalAuthMiddleware attempts verification; on failure the request
// proceeds with no identity. It never rejects.
func OptionalAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return c.Next()
		}
		claims, err := parseAndValidate(tokenString)
		if err != nil {
			return c.Next()
		}
		userID, err := extractUserID(claims)
		if err != nil {
			return c.Next()
		}
		c.Locals(helper.LocalsUserID, userID.String())
		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

// OnlyRoles gates a route to an allow-list of roles. The role is read from
// the token claims only, so a role change takes effect on next login.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(helper.LocalsUserRole).(string)
		if !ok || role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Valid token required")
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		if customMessage == "" {
			customMessage = "Forbidden: insufficient role"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customMessage)
	}
}

func parseAndValidate(tokenString string) (jwt.MapClaims, error) {
	secretKey := configs.JWTSecret
	if secretKey == "" {
		return nil, errors.New("missing JWT secret")
	}

	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}); err != nil {
		return nil, err
	}

	if err := validateTokenExpiry(claims, expirySkew); err != nil {
		return nil, err
	}
	return claims, nil
}
