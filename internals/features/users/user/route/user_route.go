// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teacha_backend/internals/constants"
	"teacha_backend/internals/features/users/user/controller"
	authMw "teacha_backend/internals/middlewares/auth"
)

func UserRoutes(app *fiber.App, db *gorm.DB) {
	userCtrl := controller.NewUserController(db)

	// Base: /api/users — token required throughout
	users := app.Group("/api/users", authMw.AuthMiddleware(db))

	users.Get("/", userCtrl.GetUsers)
	users.Get("/:id", userCtrl.GetUser)

	// 🔒 owner/admin only
	users.Post("/",
		authMw.OnlyRoles(constants.RoleErrorOwner("user management"), constants.OwnerAndAdmin...),
		userCtrl.CreateUser,
	)

	// update does its own admin-or-self check
	users.Put("/:id", userCtrl.UpdateUser)

	// 🔒 admin only
	users.Delete("/:id",
		authMw.OnlyRoles(constants.RoleErrorAdmin("user deletion"), constants.AdminOnly...),
		userCtrl.DeleteUser,
	)
}
