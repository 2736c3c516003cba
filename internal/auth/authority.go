package auth

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"tictactoe-gateway/internal/logger"
	"tictactoe-gateway/internal/session"

	"github.com/google/uuid"
)

// Authority creates, validates, and revokes login sessions. It is the only
// writer of the session store; the middleware reads through Verify.
type Authority struct {
	store session.Store
	ttl   time.Duration
}

func NewAuthority(store session.Store) *Authority {
	return &Authority{
		store: store,
		ttl:   session.TTL,
	}
}

// Login mints a fresh identity and session for the given display name.
// No uniqueness check is performed against existing usernames — duplicate
// display names are permitted.
func (a *Authority) Login(ctx context.Context, rawUsername string) (*session.Session, error) {
	username := strings.TrimSpace(rawUsername)

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if n := utf8.RuneCountInString(username); n < 2 || n > 20 {
		return nil, ErrUsernameLength
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("auth: mint session id: %w", err)
	}

	sess := session.Session{
		SessionID: sessionID,
		UserID:    uuid.NewString(),
		Username:  username,
		LoginTime: time.Now().UTC(),
		IsActive:  true,
	}

	// Two independent writes, no transaction. A failure between them can
	// leave the user view without a session view until the TTL clears it.
	if err := a.store.Put(ctx, session.SessionKey(sess.SessionID), sess, a.ttl); err != nil {
		return nil, fmt.Errorf("auth: store session view: %w", err)
	}
	if err := a.store.Put(ctx, session.UserKey(sess.UserID), sess, a.ttl); err != nil {
		return nil, fmt.Errorf("auth: store user view: %w", err)
	}

	logger.Info("user logged in", map[string]any{
		"username": sess.Username,
		"user_id":  sess.UserID,
	})

	return &sess, nil
}

// Verify resolves a session token to its identity. Returns
// ErrSessionNotFound when the session-keyed view is absent or expired.
func (a *Authority) Verify(ctx context.Context, sessionID string) (*Identity, error) {
	sess, err := a.store.Get(ctx, session.SessionKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("auth: read session: %w", err)
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	return &Identity{
		UserID:   sess.UserID,
		Username: sess.Username,
	}, nil
}

// Logout deletes the session-keyed view. The paired user-keyed view is
// left to lapse on its own TTL, so identity lookups by user ID keep
// working after logout. Idempotent: logging out an absent session
// succeeds.
func (a *Authority) Logout(ctx context.Context, sessionID string) error {
	// Best-effort lookup for the log line only.
	sess, err := a.store.Get(ctx, session.SessionKey(sessionID))
	if err == nil && sess != nil {
		logger.Info("user logged out", map[string]any{
			"username": sess.Username,
		})
	}

	if err := a.store.Delete(ctx, session.SessionKey(sessionID)); err != nil {
		return fmt.Errorf("auth: delete session: %w", err)
	}
	return nil
}
