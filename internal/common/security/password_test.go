package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sivaprasad1108/event-sync-api/internal/common"
)

func TestPasswordHasher_HashAndCheck(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, h.CheckPasswordHash("s3cret", hash))
	assert.False(t, h.CheckPasswordHash("S3cret", hash))
	assert.False(t, h.CheckPasswordHash("", hash))
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.HashPassword("same")
	require.NoError(t, err)
	second, err := h.HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	h := NewPasswordHasher(100)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}

func TestPasswordHasher_TooLong(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	_, err := h.HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, common.ErrValidation)
}
