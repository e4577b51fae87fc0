package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResendMailer(t *testing.T, handler http.HandlerFunc) *ResendMailer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := NewResendMailer("test-api-key", "noreply@example.com", zerolog.Nop())
	baseURL, err := url.Parse(srv.URL)
	require.NoError(t, err)
	m.client.BaseURL = baseURL
	return m
}

func TestResendMailer_Send(t *testing.T) {
	m := newTestResendMailer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("expected POST /emails, got %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Errorf("expected bearer auth, got %q", r.Header.Get("Authorization"))
		}

		var req resend.SendEmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		assert.Equal(t, "noreply@example.com", req.From)
		assert.Equal(t, []string{"a@example.com"}, req.To)
		assert.Equal(t, "Event Registration Confirmation", req.Subject)
		assert.Equal(t, "You are registered for X at Y", req.Text)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "email-123"})
	})

	err := m.Send(context.Background(), Message{
		To:      "a@example.com",
		Subject: "Event Registration Confirmation",
		Body:    "You are registered for X at Y",
	})
	assert.NoError(t, err)
}

func TestResendMailer_RateLimited(t *testing.T) {
	m := newTestResendMailer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-RateLimit-Limit", "2")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "1")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Too many requests"})
	})

	err := m.Send(context.Background(), Message{To: "a@example.com", Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestResendMailer_APIError(t *testing.T) {
	m := newTestResendMailer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid from"})
	})

	err := m.Send(context.Background(), Message{To: "a@example.com", Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resend API error")
}

func TestResendMailer_RejectsInvalidRecipient(t *testing.T) {
	m := newTestResendMailer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("API must not be called for an invalid recipient")
	})

	err := m.Send(context.Background(), Message{To: "x\r\nBcc: y@example.com", Subject: "s", Body: "b"})
	assert.Error(t, err)
}
