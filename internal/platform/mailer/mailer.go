// Package mailer delivers plain-text emails through a configurable transport.
package mailer

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sivaprasad1108/event-sync-api/internal/platform/config"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns the transport named by cfg.Provider.
func New(cfg config.EmailConfig, logger zerolog.Logger) (Mailer, error) {
	logger = logger.With().Str("component", "mailer").Str("provider", cfg.Provider).Logger()

	switch cfg.Provider {
	case "", "log":
		return NewLogMailer(cfg.From, logger), nil
	case "smtp":
		if err := validateAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender email in config: %w", err)
		}
		return NewSMTPMailer(cfg, logger), nil
	case "resend":
		if err := validateAddress(cfg.From); err != nil {
			return nil, fmt.Errorf("invalid sender email in config: %w", err)
		}
		return NewResendMailer(cfg.ResendAPIKey, cfg.From, logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

// validateAddress rejects malformed addresses and header injection attempts.
func validateAddress(address string) error {
	if strings.ContainsAny(address, "\r\n") {
		return fmt.Errorf("invalid email address: contains newline characters")
	}
	if _, err := mail.ParseAddress(address); err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	return nil
}

func validateMessage(msg Message) error {
	if err := validateAddress(msg.To); err != nil {
		return fmt.Errorf("invalid recipient email: %w", err)
	}
	if strings.ContainsAny(msg.Subject, "\r\n") {
		return fmt.Errorf("invalid subject: contains newline characters")
	}
	return nil
}
