// Package mail sends application-related notification emails over SMTP.
package mail

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/gomail.v2"
)

// Mailer sends a single plain email. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(to string, subject string, body string) error
}

// SMTPMailer sends mail through the SMTP server configured in the
// environment. When the configuration is incomplete every Send becomes a
// logged no-op, so local setups work without an SMTP server.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewSMTPMailer builds a mailer from SMTP_HOST, SMTP_PORT, SMTP_USER,
// SMTP_PASSWORD and EMAIL_FROM.
func NewSMTPMailer() *SMTPMailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	return &SMTPMailer{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: os.Getenv("EMAIL_FROM"),
	}
}

// Send delivers one text email. Missing configuration or an empty recipient
// is not an error; the message is skipped and logged.
func (m *SMTPMailer) Send(to string, subject string, body string) error {
	if m.host == "" || m.from == "" {
		log.Println("mail config missing, skip notification")
		return nil
	}
	if strings.TrimSpace(to) == "" {
		log.Println("mail recipient empty, skip notification")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}
