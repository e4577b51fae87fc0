package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sivaprasad1108/event-sync-api/internal/domain/model"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/mailer"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/metrics"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/queue"
)

const retryDelay = time.Second

// NotificationWorker drains the notification queue and hands each job to the
// mailer. A failed send is logged and dropped.
type NotificationWorker struct {
	queue       queue.NotificationQueue
	mailer      mailer.Mailer
	sendTimeout time.Duration
	logger      zerolog.Logger
}

func NewNotificationWorker(q queue.NotificationQueue, m mailer.Mailer, sendTimeout time.Duration, logger zerolog.Logger) *NotificationWorker {
	return &NotificationWorker{
		queue:       q,
		mailer:      m,
		sendTimeout: sendTimeout,
		logger:      logger.With().Str("component", "notification_worker").Logger(),
	}
}

// Start blocks until ctx is cancelled or the queue is closed.
func (w *NotificationWorker) Start(ctx context.Context) error {
	w.logger.Info().Msg("notification worker started")
	for {
		n, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, queue.ErrQueueClosed) {
				w.logger.Info().Msg("notification worker stopping")
				return nil
			}
			w.logger.Error().Err(err).Msg("failed to dequeue notification")
			// Avoid busy-looping on a broken queue
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(retryDelay):
			}
			continue
		}
		w.process(ctx, n)
	}
}

func (w *NotificationWorker) process(ctx context.Context, n model.Notification) {
	sendCtx := ctx
	if w.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, w.sendTimeout)
		defer cancel()
	}

	logger := w.logger.With().
		Str("notification_id", n.ID).
		Str("event_id", n.EventID).
		Str("user_id", n.UserID).
		Logger()

	err := w.mailer.Send(sendCtx, mailer.Message{To: n.To, Subject: n.Subject, Body: n.Body})
	if err != nil {
		logger.Error().Err(err).Msg("failed to send registration email")
		metrics.NotificationsTotal.WithLabelValues("send_failed").Inc()
		return
	}
	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	logger.Info().Msg("registration email sent")
}
