package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/sivaprasad1108/event-sync-api/internal/api/handler"
	"github.com/sivaprasad1108/event-sync-api/internal/api/middleware"
	"github.com/sivaprasad1108/event-sync-api/internal/app/service"
	"github.com/sivaprasad1108/event-sync-api/internal/common"
	"github.com/sivaprasad1108/event-sync-api/internal/common/security"
	"github.com/sivaprasad1108/event-sync-api/internal/platform/metrics"
)

func NewRouter(
	authService *service.AuthService,
	eventService *service.EventService,
	tokens *security.TokenService,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogging(logger))
	r.Use(metrics.Middleware)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		api.Group(authHandler.RegisterRoutes)

		// Event routes (authenticated, some organizer-only)
		eventHandler := handler.NewEventHandler(eventService)
		api.Route("/events", func(events chi.Router) {
			events.Use(middleware.Authenticator(tokens))
			eventHandler.RegisterRoutes(events)
		})
	})

	return r
}
