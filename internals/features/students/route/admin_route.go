package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "feeportal_backend/internals/features/students/controller"
	"feeportal_backend/internals/services/email"
)

// StudentAdminRoutes: roster management under /api/a.
func StudentAdminRoutes(r fiber.Router, db *gorm.DB, mailer email.Mailer) {
	ctl := studentController.NewStudentAdminController(db, mailer)

	students := r.Group("/students")
	{
		students.Get("/", ctl.List)
		students.Post("/", ctl.Upsert)
		students.Get("/requested", ctl.Requested)
		students.Get("/:sid", ctl.Detail)
		students.Post("/:sid/pay", ctl.PayFee)
		students.Delete("/:sid", ctl.Delete)
	}
}
