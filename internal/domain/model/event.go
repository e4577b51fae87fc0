package model

import (
	"time"
)

type Event struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DateTime     string    `json:"dateTime"` // Opaque, only checked for presence
	OrganizerID  string    `json:"organizerId"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EventSummary is the list projection of an Event. It exposes how many
// participants joined, never who.
type EventSummary struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	DateTime         string    `json:"dateTime"`
	OrganizerID      string    `json:"organizerId"`
	ParticipantCount int       `json:"participantCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// EventPatch carries the fields to merge into a stored event. Nil fields are
// left untouched.
type EventPatch struct {
	Title       *string
	Description *string
	DateTime    *string
	UpdatedAt   time.Time
}

func (e *Event) Summary() EventSummary {
	return EventSummary{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		DateTime:         e.DateTime,
		OrganizerID:      e.OrganizerID,
		ParticipantCount: len(e.Participants),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// HasParticipant reports whether userID already joined the event.
func (e *Event) HasParticipant(userID string) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot alias the store's participant list.
func (e *Event) Clone() *Event {
	c := *e
	c.Participants = make([]string, len(e.Participants))
	copy(c.Participants, e.Participants)
	return &c
}
