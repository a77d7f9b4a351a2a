package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"
)

// CookieName carries the session token issued after a successful login.
const CookieName = "tbh_auth"

var ErrWrongPassword = errors.New("wrong password")

// Store keeps access-gate sessions.
type Store interface {
	// Create issues a new token valid for ttl.
	Create(ctx context.Context, ttl time.Duration) (string, error)

	// Valid reports whether token exists and has not expired.
	Valid(ctx context.Context, token string) (bool, error)

	// Close releases the backing connection.
	Close() error
}

// Gate checks the shared access password and issues sessions.
type Gate struct {
	password string
	store    Store
	ttl      time.Duration
}

func NewGate(password string, store Store, ttl time.Duration) *Gate {
	return &Gate{password: password, store: store, ttl: ttl}
}

// Login compares input with the configured password, case-sensitively, and returns a session token.
func (g *Gate) Login(ctx context.Context, input string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(input), []byte(g.password)) != 1 {
		return "", ErrWrongPassword
	}
	return g.store.Create(ctx, g.ttl)
}

// Check reports whether token belongs to a live session.
func (g *Gate) Check(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return g.store.Valid(ctx, token)
}

// TTL is how long issued sessions live.
func (g *Gate) TTL() time.Duration {
	return g.ttl
}
