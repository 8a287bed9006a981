package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

// SessionName is the cookie name carrying the editor session.
const SessionName = "pagewright_session"

// Context keys for middleware
type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
	WebsiteIDKey contextKey = "website_id"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionAuthMiddleware reads the editor session cookie and requires a signed
// in user. The user id and the currently selected website id, when present,
// are placed on the request context.
func SessionAuthMiddleware(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err != nil {
				writeError(w, r, pagewright.ErrNotAuthenticated)
				return
			}

			userID, ok := session.Values["user_id"].(string)
			if !ok || userID == "" {
				writeError(w, r, pagewright.ErrNotAuthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			if websiteID, ok := session.Values["website_id"].(int64); ok {
				ctx = context.WithValue(ctx, WebsiteIDKey, websiteID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the session user id, or empty when absent.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// WebsiteIDFromContext returns the selected website id, or zero when absent.
func WebsiteIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(WebsiteIDKey).(int64); ok {
		return id
	}
	return 0
}
