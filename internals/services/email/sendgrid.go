package email

import (
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridMailer struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

func NewSendgridMailer(apiKey, fromName, fromAddr string) Mailer {
	return &sendgridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

func (m *sendgridMailer) Send(msg Message) {
	if msg.ToAddr == "" {
		return
	}
	go func() {
		from := sgmail.NewEmail(m.fromName, m.fromAddr)
		to := sgmail.NewEmail(msg.ToName, msg.ToAddr)
		mail := sgmail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")

		res, err := m.client.Send(mail)
		if err != nil {
			log.Printf("[ERROR] sending email: %v", err)
		} else if res.StatusCode >= http.StatusBadRequest {
			log.Printf("[ERROR] sending email - status: %d - body: %s", res.StatusCode, res.Body)
		}
	}()
}
