package email

import (
	"log"

	"feeportal_backend/internals/configs"
)

// Message is one outbound mail. Plain text only; the portal sends
// receipts and welcome notes, nothing designed.
type Message struct {
	ToName  string
	ToAddr  string
	Subject string
	Body    string
}

// Mailer is any backend that can deliver messages. Delivery is
// best-effort and asynchronous; a failed mail never fails the request
// that triggered it.
type Mailer interface {
	Send(msg Message)
}

// FromEnv picks the backend: SendGrid when an API key is configured,
// console otherwise.
func FromEnv() Mailer {
	if key := configs.GetEnv("SENDGRID_API_KEY"); key != "" {
		log.Println("✅ SendGrid mailer active")
		return NewSendgridMailer(
			key,
			configs.GetEnv("EMAIL_FROM_NAME", "Fee Portal"),
			configs.GetEnv("EMAIL_FROM_ADDR", "noreply@feeportal.local"),
		)
	}
	log.Println("⚠️ SENDGRID_API_KEY not set, using console mailer")
	return NewConsoleMailer()
}
