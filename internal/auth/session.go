package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrShortSecret  = errors.New("secret must be at least 32 characters")
)

// DefaultSessionTTL is how long a login session stays valid
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionSubject is the subject of every session token
const SessionSubject = "admin"

// SessionManager issues and validates HS256 session tokens
type SessionManager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewSessionManager creates a session manager.
// Returns an error if the secret is shorter than 32 characters.
func NewSessionManager(secret string, ttl time.Duration) (*SessionManager, error) {
	if len(secret) < 32 {
		return nil, ErrShortSecret
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &SessionManager{
		secretKey: []byte(secret),
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// TTL returns the session lifetime
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a new session token
func (m *SessionManager) Issue() (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   SessionSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Validate checks a session token's signature, subject and expiry
func (m *SessionManager) Validate(tokenString string) error {
	if tokenString == "" {
		return ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	}, jwt.WithTimeFunc(m.now))

	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrExpiredToken
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject != SessionSubject {
		return ErrInvalidToken
	}

	return nil
}
