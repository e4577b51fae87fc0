package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sivaprasad1108/event-sync-api/internal/common"
	"github.com/sivaprasad1108/event-sync-api/internal/domain/model"
)

const signingAlg = "HS256"

// ErrMissingSigningKey is returned when the token service is built without a secret.
var ErrMissingSigningKey = errors.New("jwt signing secret is not configured")

// Claims are the identity facts embedded in an issued token.
type Claims struct {
	UserID    string
	Role      model.Role
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and verifies HS256 tokens signed with a shared secret.
// Tokens stay valid until they expire; rotating the secret invalidates all
// outstanding tokens.
type TokenService struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &TokenService{
		auth: jwtauth.New(signingAlg, secret, nil),
		ttl:  ttl,
	}, nil
}

func (s *TokenService) Issue(c Claims) (string, error) {
	if c.UserID == "" || c.Role == "" || c.Email == "" {
		return "", fmt.Errorf("issue token: incomplete claims: %w", common.ErrInvalidToken)
	}
	claims := jwt.MapClaims{
		"userId": c.UserID,
		"role":   string(c.Role),
		"email":  c.Email,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, s.ttl)

	_, tokenString, err := s.auth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded
// claims. Every failure is reported as common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrInvalidToken
	}
	token, err := jwtauth.VerifyToken(s.auth, tokenString)
	if err != nil || token == nil {
		return nil, common.ErrInvalidToken
	}
	if token.Expiration().IsZero() {
		return nil, common.ErrInvalidToken
	}

	private := jwt.MapClaims(token.PrivateClaims())
	userID, err := GetUserIDFromClaims(private)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrInvalidToken)
	}
	role, err := GetUserRoleFromClaims(private)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrInvalidToken)
	}
	email, err := GetEmailFromClaims(private)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrInvalidToken)
	}

	return &Claims{
		UserID:    userID,
		Role:      model.Role(role),
		Email:     email,
		ExpiresAt: token.Expiration(),
	}, nil
}

// Helper functions to extract claims
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	return stringClaim(claims, "userId")
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (string, error) {
	return stringClaim(claims, "role")
}

func GetEmailFromClaims(claims jwt.MapClaims) (string, error) {
	return stringClaim(claims, "email")
}

func stringClaim(claims jwt.MapClaims, name string) (string, error) {
	v, ok := claims[name].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s claim is missing or not a string", name)
	}
	return v, nil
}
