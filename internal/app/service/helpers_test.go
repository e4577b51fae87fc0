package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sivaprasad1108/event-sync-api/internal/common/security"
	"github.com/sivaprasad1108/event-sync-api/internal/domain/repository"
)

// minimum bcrypt cost keeps the suite fast
const testBcryptCost = 4

func newTestAuthService(t *testing.T) (*AuthService, repository.UserRepository, *security.TokenService) {
	t.Helper()
	tokens, err := security.NewTokenService([]byte("test-secret"), time.Hour)
	require.NoError(t, err)
	users := repository.NewMemUserRepository()
	return NewAuthService(users, tokens, security.NewPasswordHasher(testBcryptCost), zerolog.Nop()), users, tokens
}

func strPtr(s string) *string { return &s }
