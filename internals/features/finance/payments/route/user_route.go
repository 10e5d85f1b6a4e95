package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feeportal_backend/internals/configs"
	paymentController "feeportal_backend/internals/features/finance/payments/controller"
	"feeportal_backend/internals/services/email"
)

// PaymentUserRoutes: gateway checkout + history under /api/s.
func PaymentUserRoutes(r fiber.Router, db *gorm.DB, mailer email.Mailer) {
	h := paymentController.NewPaymentController(db, configs.MidtransServerKey, mailer)

	payments := r.Group("/me/payments")
	{
		payments.Get("/", h.MyPayments)
	}
	r.Post("/me/pay", h.CreateOrder)
}

// PaymentWebhookRoutes: the public notification endpoint. No session;
// the signature check is the authentication.
func PaymentWebhookRoutes(app *fiber.App, db *gorm.DB, mailer email.Mailer) {
	h := paymentController.NewPaymentController(db, configs.MidtransServerKey, mailer)
	app.Post("/api/payments/notification", h.Notification)
}
