package session

import (
	"context"
	"time"
)

// TTL is the fixed lifetime of every session record. It is set once at
// login and never refreshed by activity.
const TTL = 24 * time.Hour

// Session is the record stored under both keyed views. It is immutable
// after creation; IsActive is written as true and never flipped — logout
// deletes the session-keyed view instead.
type Session struct {
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	LoginTime time.Time `json:"loginTime"`
	IsActive  bool      `json:"isActive"`
}

// SessionKey addresses the view used for per-request authorization.
func SessionKey(sessionID string) string {
	return "session:" + sessionID
}

// UserKey addresses the view used for identity lookups independent of the
// originating session.
func UserKey(userID string) string {
	return "user:" + userID
}

// Store defines how session records are stored and retrieved.
// Implementations (e.g., Redis) must remain stateless and opaque.
//
// The two views of one logical session are written as independent keys
// with no transaction across them; a crash between the writes leaves the
// views inconsistent until the TTL clears them. That window is an accepted
// property of the schema, not something implementations may paper over.
type Store interface {
	// Put stores s under key, replacing any previous value. The record
	// becomes unreadable once ttl elapses.
	Put(ctx context.Context, key string, s Session, ttl time.Duration) error

	// Get returns the live record for key, or (nil, nil) when the key is
	// absent or expired. Absence is not an error.
	Get(ctx context.Context, key string) (*Session, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
