package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"tictactoe-gateway/internal/auth"
	"tictactoe-gateway/internal/logger"
)

// SessionHeader is the request header carrying the session token.
const SessionHeader = "X-Session-Id"

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// IdentityFromContext extracts the authenticated identity from context.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

type AuthMiddleware struct {
	Authority *auth.Authority
}

func NewAuthMiddleware(authority *auth.Authority) *AuthMiddleware {
	return &AuthMiddleware{Authority: authority}
}

// RequireSession gates a request on a live session. It performs no game
// logic and has no side effects beyond the store read inside Verify.
func (a *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session token header
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			writeError(w, http.StatusUnauthorized, "Session ID required")
			return
		}

		// 2. Resolve token to identity
		identity, err := a.Authority.Verify(r.Context(), sessionID)
		if err != nil {
			if errors.Is(err, auth.ErrSessionNotFound) {
				writeError(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}
			logger.Error("session verification failed", map[string]any{"error": err.Error()})
			writeError(w, http.StatusInternalServerError, "Authentication failed")
			return
		}

		// 3. Attach identity to context
		ctx := context.WithValue(r.Context(), identityKey, *identity)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
