package auth

import (
	"context"
	"errors"
)

var ErrNoSession = errors.New("session not found")

// SessionStore keeps server-side login sessions. Implementations must be safe
// for concurrent use.
type SessionStore interface {
	// Create opens a new session for the user and returns its id.
	Create(ctx context.Context, userID string) (string, error)
	// Get resolves a session id to the owning user id, or ErrNoSession.
	Get(ctx context.Context, sessionID string) (string, error)
	// Delete revokes a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, sessionID string) error
}
