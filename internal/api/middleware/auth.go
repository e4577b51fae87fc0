package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog"

	"github.com/sivaprasad1108/event-sync-api/internal/common"
	"github.com/sivaprasad1108/event-sync-api/internal/common/security"
	"github.com/sivaprasad1108/event-sync-api/internal/domain/model"
)

type contextKey string

const IdentityCtxKey contextKey = "identity"

const (
	msgMissingToken     = "authorization header missing or invalid"
	msgInvalidToken     = "invalid or expired token"
	msgOrganizerOnly    = "organizer role required"
	msgNotAuthenticated = "authentication required"
)

// Authenticator requires an "Authorization: Bearer <token>" header and puts
// the verified caller on the request context.
func Authenticator(tokens *security.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// TokenFromHeader returns "" unless the Bearer scheme is present
			raw := jwtauth.TokenFromHeader(r)
			if raw == "" {
				common.RespondWithError(w, http.StatusUnauthorized, msgMissingToken)
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				zerolog.Ctx(r.Context()).Debug().Err(err).Msg("token rejected")
				common.RespondWithError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			identity := model.Identity{ID: claims.UserID, Role: claims.Role, Email: claims.Email}
			ctx := WithIdentity(r.Context(), identity)
			logger := zerolog.Ctx(ctx).With().Str("user_id", identity.ID).Logger()
			ctx = logger.WithContext(ctx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func OrganizerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentityFromContext(r.Context())
		if !ok {
			common.RespondWithError(w, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}
		if !identity.IsOrganizer() {
			common.RespondWithError(w, http.StatusForbidden, msgOrganizerOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// Helper to get the authenticated caller from context
func GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(model.Identity)
	return identity, ok
}
