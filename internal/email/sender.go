// Package email delivers notification emails over SMTP.
package email

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"skillnaav/internal/common"
	"skillnaav/internal/config"
)

type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	fromEmail string
	fromName  string
	dialer    Dialer
}

func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
	}
}

func (s *SMTPSender) SendEmail(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient is required")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.fromEmail, s.fromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogEmailService stands in for SMTP when email is disabled.
type LogEmailService struct{}

func (LogEmailService) SendEmail(to, subject, body string) error {
	log.Printf("Email disabled - To: %s, Subject: %s", to, subject)
	return nil
}

func NewEmailService(cfg *config.Config) common.EmailService {
	if !cfg.Email.Enabled || cfg.Email.SMTPHost == "" {
		return LogEmailService{}
	}
	return NewSMTPSender(cfg.Email)
}
