package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teacha_backend/internals/configs"
	"teacha_backend/internals/constants"
	helper "teacha_backend/internals/helpers"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func validClaims(role string) jwt.MapClaims {
	now := time.Now().UTC()
	return jwt.MapClaims{
		"typ":   "access",
		"sub":   uuid.NewString(),
		"id":    uuid.NewString(),
		"email": "user@example.com",
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

func useTestSecret(t *testing.T) {
	t.Helper()
	prev := configs.JWTSecret
	configs.JWTSecret = testSecret
	t.Cleanup(func() { configs.JWTSecret = prev })
}

// db is nil in these tests, which skips the blacklist lookup.
func protectedApp(extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := append([]fiber.Handler{AuthMiddleware(nil)}, extra...)
	chain = append(chain, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals(helper.LocalsUserID),
			"role":    c.Locals(helper.LocalsUserRole),
		})
	})
	app.Get("/protected", chain...)
	return app
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	useTestSecret(t)
	app := protectedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMalformedToken(t *testing.T) {
	useTestSecret(t)
	app := protectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsWrongSignature(t *testing.T) {
	useTestSecret(t)
	app := protectedApp()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims(constants.RoleStudent)).
		SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	useTestSecret(t)
	app := protectedApp()

	claims := validClaims(constants.RoleStudent)
	claims["exp"] = time.Now().UTC().Add(-time.Hour).Unix()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	useTestSecret(t)
	app := protectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(constants.RoleStudent)))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareAcceptsCookieToken(t *testing.T) {
	useTestSecret(t)
	app := protectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: signToken(t, validClaims(constants.RoleStudent))})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOnlyRolesForbidsStudent(t *testing.T) {
	useTestSecret(t)
	app := protectedApp(OnlyRoles("Insufficient permissions", constants.OwnerAndAdmin...))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(constants.RoleStudent)))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestOnlyRolesAllowsAdmin(t *testing.T) {
	useTestSecret(t)
	app := protectedApp(OnlyRoles("Insufficient permissions", constants.OwnerAndAdmin...))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(constants.RoleAdmin)))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalAuthNeverRejects(t *testing.T) {
	useTestSecret(t)
	app := fiber.New()
	app.Get("/open", OptionalAuthMiddleware(), func(c *fiber.Ctx) error {
		if c.Locals(helper.LocalsUserID) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString("identified")
	})

	// no token at all
	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// garbage token still passes through
	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// valid token populates identity
	req = httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(constants.RoleStudent)))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
