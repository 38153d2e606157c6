// file: internals/features/tenants/route/tenant_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teacha_backend/internals/constants"
	"teacha_backend/internals/features/tenants/controller"
	rateLimiter "teacha_backend/internals/middlewares"
	authMw "teacha_backend/internals/middlewares/auth"
)

func TenantRoutes(app *fiber.App, db *gorm.DB) {
	tenantCtrl := controller.NewTenantController(db)

	// Base: /api/tenants
	tenants := app.Group("/api/tenants")

	// 🔓 public
	tenants.Post("/signup", rateLimiter.RegisterRateLimiter(), tenantCtrl.Signup)
	tenants.Post("/check-slug", tenantCtrl.CheckSlug)

	// 🔒 protected
	current := app.Group("/api/tenants", authMw.AuthMiddleware(db))
	current.Get("/current", tenantCtrl.GetCurrent)
	current.Put("/current",
		authMw.OnlyRoles("Insufficient permissions", constants.OwnerAndAdmin...),
		tenantCtrl.UpdateCurrent,
	)
}
