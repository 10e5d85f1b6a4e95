package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "feeportal_backend/internals/features/students/controller"
)

// StudentSelfRoutes: the student's own dashboard under /api/s.
func StudentSelfRoutes(r fiber.Router, db *gorm.DB) {
	ctl := studentController.NewStudentSelfController(db)

	me := r.Group("/me")
	{
		me.Get("/", ctl.Me)
		me.Post("/request-admin-payment", ctl.RequestAdminPayment)
	}
}
