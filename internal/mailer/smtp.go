package mailer

import (
	"context"
	"fmt"
	"net/smtp"
)

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// SMTPSender delivers through a plain SMTP relay with AUTH PLAIN.
type SMTPSender struct {
	config SMTPConfig
}

func NewSMTPSender(config SMTPConfig) (*SMTPSender, error) {
	if config.Host == "" || config.User == "" || config.Password == "" {
		return nil, fmt.Errorf("smtp config not set")
	}
	if config.Port == "" {
		config.Port = "587"
	}
	if config.From == "" {
		config.From = config.User
	}
	return &SMTPSender{config: config}, nil
}

func (s *SMTPSender) Send(_ context.Context, email *Email) error {
	addr := s.config.Host + ":" + s.config.Port
	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)

	msg := "From: " + s.config.From + "\r\n" +
		"To: " + email.To + "\r\n" +
		"Subject: " + email.Subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
		"\r\n" + email.Body

	if err := smtp.SendMail(addr, auth, s.config.From, []string{email.To}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
