package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sivaprasad1108/event-sync-api/internal/api/middleware"
	"github.com/sivaprasad1108/event-sync-api/internal/app/service"
	"github.com/sivaprasad1108/event-sync-api/internal/common"
)

type EventHandler struct {
	eventService *service.EventService
}

func NewEventHandler(es *service.EventService) *EventHandler {
	return &EventHandler{eventService: es}
}

// RegisterRoutes expects to be mounted behind middleware.Authenticator.
func (h *EventHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listEvents)                          // GET /api/events
	r.Get("/{eventID}", h.getEvent)                   // GET /api/events/{id}
	r.Post("/{eventID}/register", h.registerForEvent) // POST /api/events/{id}/register

	r.Group(func(organizerRouter chi.Router) {
		organizerRouter.Use(middleware.OrganizerOnly)
		organizerRouter.Post("/", h.createEvent)
		organizerRouter.Put("/{eventID}", h.updateEvent)
		organizerRouter.Delete("/{eventID}", h.deleteEvent)
	})
}

func (h *EventHandler) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, events)
}

func (h *EventHandler) getEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventService.GetByID(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, event)
}

func (h *EventHandler) createEvent(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithDomainError(w, r, common.ErrUnauthorized)
		return
	}

	var req service.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}

	event, err := h.eventService.Create(r.Context(), identity, req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) updateEvent(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithDomainError(w, r, common.ErrUnauthorized)
		return
	}

	var req service.UpdateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}

	event, err := h.eventService.Update(r.Context(), identity, chi.URLParam(r, "eventID"), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, event)
}

func (h *EventHandler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithDomainError(w, r, common.ErrUnauthorized)
		return
	}

	if err := h.eventService.Delete(r.Context(), identity, chi.URLParam(r, "eventID")); err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondNoContent(w)
}

func (h *EventHandler) registerForEvent(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithDomainError(w, r, common.ErrUnauthorized)
		return
	}

	event, err := h.eventService.RegisterParticipant(r.Context(), identity, chi.URLParam(r, "eventID"))
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, event)
}
