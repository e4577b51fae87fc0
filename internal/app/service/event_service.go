package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/sivaprasad1108/event-sync-api/internal/common"
	"github.com/sivaprasad1108/event-sync-api/internal/domain/model"
	"github.com/sivaprasad1108/event-sync-api/internal/domain/repository"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/metrics"
)

// Notifier is told about every successful registration. Implementations must
// return promptly; the registration result never depends on them.
type Notifier interface {
	NotifyRegistration(ctx context.Context, userID string, event *model.Event)
}

type EventService struct {
	eventRepo repository.EventRepository
	notifier  Notifier
	now       func() time.Time
	logger    zerolog.Logger
}

func NewEventService(eventRepo repository.EventRepository, notifier Notifier, logger zerolog.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		notifier:  notifier,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger.With().Str("component", "events").Logger(),
	}
}

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DateTime    string `json:"dateTime"`
}

// UpdateEventRequest fields are optional. Absent and empty values leave the
// stored field unchanged.
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DateTime    *string `json:"dateTime,omitempty"`
}

func (s *EventService) List(ctx context.Context) ([]model.EventSummary, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	summaries := make([]model.EventSummary, 0, len(events))
	for _, e := range events {
		summaries = append(summaries, e.Summary())
	}
	return summaries, nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("event %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *EventService) Create(ctx context.Context, caller model.Identity, req CreateEventRequest) (*model.Event, error) {
	if req.Title == "" || req.Description == "" || req.DateTime == "" {
		return nil, fmt.Errorf("%w: title, description and dateTime are required", common.ErrValidation)
	}
	if !caller.IsOrganizer() {
		return nil, fmt.Errorf("%w: organizer role required", common.ErrForbidden)
	}

	now := s.now()
	event, err := s.eventRepo.Create(ctx, &model.Event{
		ID:           uuid.NewString(),
		Slug:         slug.Make(req.Title),
		Title:        req.Title,
		Description:  req.Description,
		DateTime:     req.DateTime,
		OrganizerID:  caller.ID,
		Participants: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.logger.Info().Str("event_id", event.ID).Str("organizer_id", caller.ID).Msg("event created")
	return event, nil
}

func (s *EventService) Update(ctx context.Context, caller model.Identity, id string, req UpdateEventRequest) (*model.Event, error) {
	if _, err := s.ownedEvent(ctx, caller, id, "update"); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.Update(ctx, id, model.EventPatch{
		Title:       nonEmpty(req.Title),
		Description: nonEmpty(req.Description),
		DateTime:    nonEmpty(req.DateTime),
		UpdatedAt:   s.now(),
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("event %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, caller model.Identity, id string) error {
	if _, err := s.ownedEvent(ctx, caller, id, "delete"); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("event %w", common.ErrNotFound)
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	s.logger.Info().Str("event_id", id).Str("organizer_id", caller.ID).Msg("event deleted")
	return nil
}

// RegisterParticipant adds the caller to the event. The confirmation email is
// handed to the notifier after the registration is stored.
func (s *EventService) RegisterParticipant(ctx context.Context, caller model.Identity, id string) (*model.Event, error) {
	event, err := s.eventRepo.AddParticipant(ctx, id, caller.ID, s.now())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			return nil, fmt.Errorf("event %w", common.ErrNotFound)
		case errors.Is(err, common.ErrDuplicateRegistration):
			return nil, common.ErrDuplicateRegistration
		default:
			return nil, fmt.Errorf("failed to register for event: %w", err)
		}
	}
	metrics.EventRegistrationsTotal.Inc()

	if s.notifier != nil {
		s.notifier.NotifyRegistration(ctx, caller.ID, event)
	}
	return event, nil
}

func (s *EventService) ownedEvent(ctx context.Context, caller model.Identity, id, action string) (*model.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != caller.ID {
		return nil, fmt.Errorf("%w: only the organizer who created the event can %s it", common.ErrForbidden, action)
	}
	return event, nil
}

func nonEmpty(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
