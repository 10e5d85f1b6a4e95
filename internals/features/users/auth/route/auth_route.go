package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "feeportal_backend/internals/features/users/auth/controller"
	"feeportal_backend/internals/middlewares"
)

// AuthRoutes: public login/logout endpoints.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	app.Post("/api/admin/login", middlewares.LoginRateLimiter(), ctl.AdminLogin)
	app.Post("/api/student/login", middlewares.LoginRateLimiter(), ctl.StudentLogin)
	app.Post("/api/logout", ctl.Logout)
}
