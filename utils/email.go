package utils

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends mail through the SMTP account configured in the
// environment (SMTP_HOST, SMTP_PORT, EMAIL_USER, EMAIL_PASS).
type SMTPMailer struct{}

func (SMTPMailer) Send(to, subject, body string) error {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}
