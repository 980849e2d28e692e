package middleware

import (
	"context"
	"net/http"
)

// UserIDHeader carries the authenticated caller identity, placed by the
// upstream auth gateway after token verification.
const UserIDHeader = "X-User-Id"

type contextKey string

const userIDKey contextKey = "userId"

// RequireUser rejects requests without a caller identity and stores the
// user id on the request context for handlers.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "Unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// UserID returns the authenticated caller id set by RequireUser.
func UserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
