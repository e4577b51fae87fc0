package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sivaprasad1108/event-sync-api/internal/common"
	"github.com/sivaprasad1108/event-sync-api/internal/domain/model"
	"github.com/sivaprasad1108/event-sync-api/internal/domain/repository"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/metrics"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/queue"
)

const defaultDispatchTimeout = 5 * time.Second

var _ Notifier = (*NotificationService)(nil)

// NotificationService turns registrations into queued emails. Dispatch runs
// on its own goroutine and never reports failure to its caller; problems are
// logged and counted.
type NotificationService struct {
	userRepo        repository.UserRepository
	queue           queue.NotificationQueue
	dispatchTimeout time.Duration
	logger          zerolog.Logger
	wg              sync.WaitGroup
}

func NewNotificationService(userRepo repository.UserRepository, q queue.NotificationQueue, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		userRepo:        userRepo,
		queue:           q,
		dispatchTimeout: defaultDispatchTimeout,
		logger:          logger.With().Str("component", "notifications").Logger(),
	}
}

// NotifyRegistration returns immediately. The request context only
// contributes values; its cancellation does not abort the dispatch.
func (s *NotificationService) NotifyRegistration(ctx context.Context, userID string, event *model.Event) {
	ev := event.Clone()
	ctx = context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
		defer cancel()
		s.dispatch(ctx, userID, ev)
	}()
}

// Wait blocks until every dispatch started so far has finished.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

func (s *NotificationService) dispatch(ctx context.Context, userID string, event *model.Event) {
	logger := s.logger.With().Str("user_id", userID).Str("event_id", event.ID).Logger()

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			logger.Warn().Msg("registrant not found, skipping confirmation email")
		} else {
			logger.Error().Err(err).Msg("failed to look up registrant")
		}
		metrics.NotificationsTotal.WithLabelValues("skipped").Inc()
		return
	}
	if user.Email == "" {
		logger.Warn().Msg("registrant has no email, skipping confirmation email")
		metrics.NotificationsTotal.WithLabelValues("skipped").Inc()
		return
	}

	n := RegistrationNotification(user, event, time.Now().UTC())
	if err := s.queue.Enqueue(ctx, n); err != nil {
		logger.Error().Err(err).Str("notification_id", n.ID).Msg("failed to queue confirmation email")
		metrics.NotificationsTotal.WithLabelValues("enqueue_failed").Inc()
		return
	}
	metrics.NotificationsTotal.WithLabelValues("queued").Inc()
	logger.Debug().Str("notification_id", n.ID).Msg("confirmation email queued")
}

// RegistrationNotification builds the confirmation email for user joining event.
func RegistrationNotification(user *model.User, event *model.Event, now time.Time) model.Notification {
	return model.Notification{
		ID:        uuid.NewString(),
		To:        user.Email,
		Subject:   model.RegistrationSubject,
		Body:      fmt.Sprintf("You are registered for %s at %s", event.Title, event.DateTime),
		EventID:   event.ID,
		UserID:    user.ID,
		CreatedAt: now,
	}
}
