package mailer

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sivaprasad1108/event-sync-api/internal/platform/config"
)

func TestNew_SelectsProvider(t *testing.T) {
	logger := zerolog.Nop()

	m, err := New(config.EmailConfig{Provider: "log", From: "noreply@example.com"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)

	m, err = New(config.EmailConfig{Provider: "", From: "noreply@example.com"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)

	m, err = New(config.EmailConfig{Provider: "smtp", From: "noreply@example.com", SMTPHost: "mail", SMTPPort: 587}, logger)
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	m, err = New(config.EmailConfig{Provider: "resend", From: "noreply@example.com", ResendAPIKey: "re_test"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &ResendMailer{}, m)

	_, err = New(config.EmailConfig{Provider: "fax"}, logger)
	assert.Error(t, err)

	_, err = New(config.EmailConfig{Provider: "smtp", From: "not an address"}, logger)
	assert.Error(t, err)
}

func TestValidateAddress(t *testing.T) {
	valid := []string{
		"user@example.com",
		"user+tag@example.co.uk",
		"User Name <user@example.com>",
	}
	for _, addr := range valid {
		t.Run(addr, func(t *testing.T) {
			assert.NoError(t, validateAddress(addr))
		})
	}

	invalid := map[string]string{
		"empty":            "",
		"no at":            "notanemail",
		"missing domain":   "user@",
		"crlf bcc":         "victim@example.com\r\nBcc: attacker@evil.com",
		"lf cc":            "test@example.com\nCc: hacker@evil.com",
		"double at":        "user@@example.com",
		"space in address": "user @example.com",
	}
	for name, addr := range invalid {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, validateAddress(addr))
		})
	}
}

func TestValidateMessage_RejectsSubjectInjection(t *testing.T) {
	err := validateMessage(Message{To: "a@example.com", Subject: "Hi\r\nBcc: evil@example.com"})
	assert.Error(t, err)
}

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer("noreply@example.com", zerolog.New(&buf))

	err := m.Send(context.Background(), Message{To: "a@example.com", Subject: "Subject", Body: "Body text"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "a@example.com")
	assert.Contains(t, out, "Body text")

	err = m.Send(context.Background(), Message{To: "broken"})
	assert.Error(t, err)
}

func TestBuildMessage(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	raw := string(buildMessage("noreply@example.com", Message{
		To:      "a@example.com",
		Subject: "Event Registration Confirmation",
		Body:    "You are registered for Go Meetup at 2026-11-01T18:00:00Z",
	}, now))

	headers, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)
	assert.Contains(t, headers, "From: noreply@example.com\r\n")
	assert.Contains(t, headers, "To: a@example.com\r\n")
	assert.Contains(t, headers, "Subject: Event Registration Confirmation\r\n")
	assert.Contains(t, headers, "Date: Thu, 15 Oct 2026 09:30:00 +0000")
	assert.Contains(t, headers, "Content-Type: text/plain; charset=UTF-8")
	assert.Equal(t, "You are registered for Go Meetup at 2026-11-01T18:00:00Z", body)
}

func TestSMTPMailer_ConnectionFailure(t *testing.T) {
	m := NewSMTPMailer(config.EmailConfig{
		SMTPHost:     "127.0.0.1",
		SMTPPort:     1,
		SMTPUser:     "u",
		SMTPPassword: "p",
		From:         "noreply@example.com",
	}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := m.Send(ctx, Message{To: "a@example.com", Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to SMTP server")
}
