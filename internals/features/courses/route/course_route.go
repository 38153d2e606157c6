// file: internals/features/courses/route/course_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teacha_backend/internals/constants"
	"teacha_backend/internals/features/courses/controller"
	authMw "teacha_backend/internals/middlewares/auth"
)

func CourseRoutes(app *fiber.App, db *gorm.DB) {
	courseCtrl := controller.NewCourseController(db)

	// Base: /api/courses — everything requires a valid token
	courses := app.Group("/api/courses", authMw.AuthMiddleware(db))

	// 🔓 any authenticated tenant member (students see published only)
	courses.Get("/", courseCtrl.GetCourses)
	courses.Get("/:id", courseCtrl.GetCourse)
	courses.Get("/:courseId/lessons", courseCtrl.GetLessons)

	// 🔒 instructor and above
	manage := authMw.OnlyRoles(constants.RoleErrorInstructor("course management"), constants.InstructorAndAbove...)
	courses.Post("/", manage, courseCtrl.CreateCourse)
	courses.Put("/:id", manage, courseCtrl.UpdateCourse)
	courses.Delete("/:id", manage, courseCtrl.DeleteCourse)
	courses.Post("/:courseId/lessons", manage, courseCtrl.CreateLesson)
	courses.Put("/:courseId/lessons/:lessonId", manage, courseCtrl.UpdateLesson)
	courses.Delete("/:courseId/lessons/:lessonId", manage, courseCtrl.DeleteLesson)
}
