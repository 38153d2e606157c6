// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseRoutes "teacha_backend/internals/features/courses/route"
	enrollmentRoutes "teacha_backend/internals/features/enrollments/route"
	tenantRoutes "teacha_backend/internals/features/tenants/route"
	authRoutes "teacha_backend/internals/features/users/auth/route"
	userRoutes "teacha_backend/internals/features/users/user/route"
	rateLimiter "teacha_backend/internals/middlewares"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// liveness endpoints sit before the limiter so probes are never throttled
	BaseRoutes(app, db)

	app.Use(rateLimiter.GlobalRateLimiter())

	authRoutes.AuthRoutes(app, db)
	tenantRoutes.TenantRoutes(app, db)
	userRoutes.UserRoutes(app, db)
	courseRoutes.CourseRoutes(app, db)
	enrollmentRoutes.EnrollmentRoutes(app, db)

	// catch-all after every feature mount
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
