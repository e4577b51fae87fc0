package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sivaprasad1108/event-sync-api/internal/domain/model"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/mailer"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/queue"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	fail map[string]bool
	done chan struct{}
}

func newFakeMailer(expect int) *fakeMailer {
	return &fakeMailer{fail: map[string]bool{}, done: make(chan struct{}, expect)}
}

func (m *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	defer func() { m.done <- struct{}{} }()
	if m.fail[msg.To] {
		return errors.New("smtp: 550 mailbox unavailable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) Sent() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.sent...)
}

func (m *fakeMailer) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-m.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for send %d", i+1)
		}
	}
}

func notification(to string) model.Notification {
	return model.Notification{ID: "n-" + to, To: to, Subject: model.RegistrationSubject, Body: "You are registered"}
}

func TestNotificationWorker_DeliversAndSurvivesFailures(t *testing.T) {
	q := queue.NewMemoryQueue(8)
	m := newFakeMailer(3)
	m.fail["bounce@example.com"] = true

	require.NoError(t, q.Enqueue(context.Background(), notification("a@example.com")))
	require.NoError(t, q.Enqueue(context.Background(), notification("bounce@example.com")))
	require.NoError(t, q.Enqueue(context.Background(), notification("b@example.com")))

	w := NewNotificationWorker(q, m, time.Second, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	m.wait(t, 3)
	cancel()
	require.NoError(t, <-errCh)

	sent := m.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "a@example.com", sent[0].To)
	assert.Equal(t, "b@example.com", sent[1].To)
	assert.Equal(t, model.RegistrationSubject, sent[0].Subject)
}

func TestNotificationWorker_StopsWhenQueueCloses(t *testing.T) {
	q := queue.NewMemoryQueue(1)
	w := NewNotificationWorker(q, newFakeMailer(0), time.Second, zerolog.Nop())

	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(context.Background()) }()

	require.NoError(t, q.Close())
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after queue close")
	}
}
