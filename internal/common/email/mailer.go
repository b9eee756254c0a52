// Package email provides the outbound mail and SMS senders shared by the
// OTP flow and the job-notification watchdog.
package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bcasprint-backend/internal/common/config"
	"bcasprint-backend/internal/common/logger"
)

// Message is a single outbound email.
type Message struct {
	To       string
	From     string
	Subject  string
	Body     string
	IsHTML   bool
	Priority string // "high", "low" or empty
}

// Mailer delivers a Message. Implementations: SMTP and SES.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// NewMailer selects the provider configured under email.provider.
func NewMailer(ctx context.Context, cfg config.EmailConfig, log logger.Logger) (Mailer, error) {
	switch cfg.Provider {
	case "ses":
		return NewSESMailer(ctx, cfg, log)
	case "smtp":
		return NewSMTPMailer(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

// ValidateAddress applies a deliberately loose check: exactly one @,
// non-empty local and domain parts, dotted domain.
func ValidateAddress(addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return fmt.Errorf("empty email address")
	}
	parts := strings.Split(addr, "@")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
		return fmt.Errorf("invalid email address: %s", addr)
	}
	if !strings.Contains(parts[1], ".") {
		return fmt.Errorf("invalid email domain: %s", parts[1])
	}
	return nil
}

// buildRFC822 renders the full wire message: headers, priority, MIME, body.
func buildRFC822(msg *Message) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("From: %s\r\n", msg.From))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))

	if msg.Priority != "" {
		switch strings.ToLower(msg.Priority) {
		case "high":
			builder.WriteString("X-Priority: 1\r\n")
			builder.WriteString("Importance: high\r\n")
		case "low":
			builder.WriteString("X-Priority: 5\r\n")
			builder.WriteString("Importance: low\r\n")
		default:
			builder.WriteString("X-Priority: 3\r\n")
		}
	}

	builder.WriteString("MIME-Version: 1.0\r\n")
	if msg.IsHTML {
		builder.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	} else {
		builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	}

	builder.WriteString("\r\n")
	builder.WriteString(msg.Body)

	return builder.String()
}

func generateMessageID(to, host string) string {
	timestamp := time.Now().UnixNano()
	return fmt.Sprintf("<%d.%s@%s>", timestamp, sanitizeLocalPart(to), host)
}

func sanitizeLocalPart(addr string) string {
	parts := strings.Split(addr, "@")
	local := parts[0]
	local = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, local)
	if len(local) > 20 {
		local = local[:20]
	}
	return local
}
