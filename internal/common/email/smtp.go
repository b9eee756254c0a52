package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"bcasprint-backend/internal/common/config"
	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
)

// SMTPMailer sends mail through a plain or STARTTLS SMTP relay.
type SMTPMailer struct {
	cfg    config.EmailConfig
	logger logger.Logger
}

func NewSMTPMailer(cfg config.EmailConfig, log logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"mailer": "smtp"}),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if msg.From == "" {
		msg.From = m.cfg.From
	}

	if err := ValidateAddress(msg.To); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := ValidateAddress(msg.From); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}

	message := buildRFC822(msg)
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTP.Host, m.cfg.SMTP.Port)

	var auth smtp.Auth
	if m.cfg.SMTP.Username != "" && m.cfg.SMTP.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTP.Username, m.cfg.SMTP.Password, m.cfg.SMTP.Host)
	}

	var err error
	if m.cfg.SMTP.UseTLS {
		err = m.sendWithTLS(addr, auth, msg.From, []string{msg.To}, []byte(message))
	} else {
		err = smtp.SendMail(addr, auth, msg.From, []string{msg.To}, []byte(message))
	}
	if err != nil {
		return errors.NewEmailSendFailedError(err)
	}

	m.logger.Info("Email sent successfully", map[string]interface{}{
		"to":        msg.To,
		"messageId": generateMessageID(msg.To, m.cfg.SMTP.Host),
	})
	return nil
}

func (m *SMTPMailer) sendWithTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName:         m.cfg.SMTP.Host,
		InsecureSkipVerify: false,
	}

	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
