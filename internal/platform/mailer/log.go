package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// LogMailer writes messages to the log instead of sending them. It is the
// default transport for development and tests.
type LogMailer struct {
	from   string
	logger zerolog.Logger
}

func NewLogMailer(from string, logger zerolog.Logger) *LogMailer {
	return &LogMailer{from: from, logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	if err := validateMessage(msg); err != nil {
		return err
	}
	m.logger.Info().
		Str("from", m.from).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("email delivery disabled, message logged")
	return nil
}
