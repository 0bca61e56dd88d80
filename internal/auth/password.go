package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
)

const (
	MinPasswordLength = 8
	BcryptCost        = 12
)

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return "", ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Gate decides whether a submitted password unlocks the pages.
// A zero Gate has no password and is disabled.
type Gate struct {
	hash []byte
}

// NewGate builds a gate from a bcrypt hash or, when no hash is set, a plain
// password that is hashed once at startup
func NewGate(hash, plain string) (*Gate, error) {
	switch {
	case strings.TrimSpace(hash) != "":
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, err
		}
		return &Gate{hash: []byte(hash)}, nil
	case plain != "":
		hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		return &Gate{hash: hashed}, nil
	default:
		return &Gate{}, nil
	}
}

// Enabled reports whether a password is configured
func (g *Gate) Enabled() bool {
	return g != nil && len(g.hash) > 0
}

// Check compares password against the configured hash
func (g *Gate) Check(password string) bool {
	if !g.Enabled() {
		return true
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(password)) == nil
}
