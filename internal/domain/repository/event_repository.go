package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sivaprasad1108/event-sync-api/internal/common"
	"github.com/sivaprasad1108/event-sync-api/internal/domain/model"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	Update(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error)
	// AddParticipant appends userID to the event's participants unless it is
	// already present. The check and the append happen under one lock.
	AddParticipant(ctx context.Context, id, userID string, at time.Time) (*model.Event, error)
	Delete(ctx context.Context, id string) error
	Clear()
}

// memEventRepository stores events in insertion order. Every value handed out
// is a deep copy.
type memEventRepository struct {
	mu     sync.RWMutex
	events []*model.Event
}

func NewMemEventRepository() EventRepository {
	return &memEventRepository{}
}

// indexOf must be called with r.mu held.
func (r *memEventRepository) indexOf(id string) int {
	for i, e := range r.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (r *memEventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(event.ID) != -1 {
		return nil, fmt.Errorf("memEventRepository.Create: event %q already exists", event.ID)
	}
	stored := event.Clone()
	r.events = append(r.events, stored)
	return stored.Clone(), nil
}

func (r *memEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return nil, common.ErrNotFound
	}
	return r.events[idx].Clone(), nil
}

func (r *memEventRepository) List(ctx context.Context) ([]*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]*model.Event, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, e.Clone())
	}
	return events, nil
}

func (r *memEventRepository) Update(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return nil, common.ErrNotFound
	}
	e := r.events[idx]
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.DateTime != nil {
		e.DateTime = *patch.DateTime
	}
	e.UpdatedAt = patch.UpdatedAt
	return e.Clone(), nil
}

func (r *memEventRepository) AddParticipant(ctx context.Context, id, userID string, at time.Time) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return nil, common.ErrNotFound
	}
	e := r.events[idx]
	if e.HasParticipant(userID) {
		return nil, common.ErrDuplicateRegistration
	}
	e.Participants = append(e.Participants, userID)
	e.UpdatedAt = at
	return e.Clone(), nil
}

func (r *memEventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return common.ErrNotFound
	}
	r.events = slices.Delete(r.events, idx, idx+1)
	return nil
}

func (r *memEventRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
