package email

import "log"

// consoleMailer just logs. Used in dev and in tests.
type consoleMailer struct{}

func NewConsoleMailer() Mailer { return consoleMailer{} }

func (consoleMailer) Send(msg Message) {
	if msg.ToAddr == "" {
		return
	}
	log.Printf("[MAIL] to=%s <%s> subject=%q\n%s", msg.ToName, msg.ToAddr, msg.Subject, msg.Body)
}
