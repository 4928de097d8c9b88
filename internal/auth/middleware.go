package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pavandive/tinderlite-api/internal/httputil"
	"github.com/pavandive/tinderlite-api/internal/user"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	// UserContextKey holds the resolved *user.User for the current request
	UserContextKey ContextKey = "user"
)

// Middleware is the auth gate for protected routes. A request passes only
// if it carries a verifiable session token whose subject still exists in
// the credential store; the resolved user record is attached to the
// request context for that request only.
type Middleware struct {
	tokens TokenService
	store  user.Store
}

func NewMiddleware(tokens TokenService, store user.Store) *Middleware {
	return &Middleware{tokens: tokens, store: store}
}

// RequireAuth validates the session token and resolves the user
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string

		// Priority 1: session cookie
		if cookieToken, err := GetSessionTokenFromCookie(r); err == nil {
			token = cookieToken
		}

		// Priority 2: Authorization header (non-browser clients)
		if token == "" {
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					token = parts[1]
				} else {
					httputil.RespondErrorWithCode(w, "invalid authorization header format", httputil.CodeInvalidAuthHeader, http.StatusBadRequest)
					return
				}
			}
		}

		if token == "" {
			httputil.RespondErrorWithCode(w, ErrTokenMissing.Error(), httputil.CodeMissingAuth, http.StatusBadRequest)
			return
		}

		userID, err := m.tokens.VerifyToken(token)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				httputil.RespondErrorWithCode(w, ErrTokenExpired.Error(), httputil.CodeTokenExpired, http.StatusBadRequest)
				return
			}
			httputil.RespondErrorWithCode(w, ErrTokenInvalid.Error(), httputil.CodeInvalidToken, http.StatusBadRequest)
			return
		}

		// The token only proves a past login; the account must still exist
		current, err := m.store.GetByID(r.Context(), userID)
		if err != nil {
			httputil.RespondErrorWithCode(w, ErrTokenInvalid.Error(), httputil.CodeInvalidToken, http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, current)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext extracts the authenticated user from the request context
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(UserContextKey).(*user.User)
	return u, ok
}
