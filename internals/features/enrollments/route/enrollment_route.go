// file: internals/features/enrollments/route/enrollment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teacha_backend/internals/features/enrollments/controller"
	authMw "teacha_backend/internals/middlewares/auth"
)

func EnrollmentRoutes(app *fiber.App, db *gorm.DB) {
	enrollCtrl := controller.NewEnrollmentController(db)

	// Base: /api/enrollments — self-service, token required
	enrollments := app.Group("/api/enrollments", authMw.AuthMiddleware(db))
	enrollments.Post("/", enrollCtrl.Enroll)
	enrollments.Get("/", enrollCtrl.GetMyEnrollments)
	enrollments.Put("/:id/progress", enrollCtrl.UpdateProgress)
}
