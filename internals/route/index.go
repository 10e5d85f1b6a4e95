// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsRoute "feeportal_backend/internals/features/academics/route"
	paymentRoute "feeportal_backend/internals/features/finance/payments/route"
	studentRoute "feeportal_backend/internals/features/students/route"
	authRoute "feeportal_backend/internals/features/users/auth/route"
	authMiddleware "feeportal_backend/internals/middlewares/auth"
	"feeportal_backend/internals/services/email"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	mailer := email.FromEnv()

	// ===================== AUTH (public) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== WEBHOOK (public) =====================
	log.Println("[INFO] Setting up payment webhook...")
	paymentRoute.PaymentWebhookRoutes(app, db, mailer)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", authMiddleware.AdminOnly(db))
	academicsRoute.AcademicsAdminRoutes(admin, db)
	studentRoute.StudentAdminRoutes(admin, db, mailer)

	// ===================== STUDENT =====================
	log.Println("[INFO] Setting up STUDENT group...")
	student := app.Group("/api/s", authMiddleware.StudentOnly(db))
	studentRoute.StudentSelfRoutes(student, db)
	paymentRoute.PaymentUserRoutes(student, db, mailer)
}
