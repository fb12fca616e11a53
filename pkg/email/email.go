package email

import (
	"context"
	"fmt"
	"net/smtp"

	"go-ats-core/config"
	"go-ats-core/internal/domain"
)

// EmailService sends rendered emails via SMTP (Brevo relay in production).
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// NewEmailService creates a new email service with SMTP configuration
func NewEmailService(cfg *config.Config) domain.EmailSender {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// Send delivers a single plain-text email. The context is accepted for
// interface symmetry; net/smtp has no cancellation hooks.
func (s *EmailService) Send(_ context.Context, to, subject, body string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service is not configured")
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		subject,
		body,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
