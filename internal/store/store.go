// Package store keeps per-session game state between requests.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Aceluke24/BDR-dice-roller/internal/dice"
)

var (
	// ErrNotFound is returned by Get when no session exists for the ID.
	ErrNotFound = errors.New("store: session not found")
	// ErrInvalidSession is returned by Save for a nil session or empty ID.
	ErrInvalidSession = errors.New("store: invalid session")
)

// Session is the stored record for one browser session.
type Session struct {
	ID        string
	Game      dice.State
	UpdatedAt time.Time
}

func (s *Session) clone() *Session {
	c := *s
	c.Game = s.Game.Clone()
	return &c
}

// Store defines the persistence interface for game sessions.
// Implementations may be backed by memory (default) or SQLite.
type Store interface {
	// Get retrieves a session by ID or returns ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Save persists or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Delete removes a session if present.
	Delete(ctx context.Context, id string) error

	// Prune removes sessions idle since before olderThan and reports how many.
	Prune(ctx context.Context, olderThan time.Time) (int, error)

	// Close releases any underlying resources.
	Close() error
}
