package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

func deny(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}

// Middleware authenticates the request from a bearer token and puts
// the Identity in the context. No token or a bad token is a 401.
func Middleware(t *Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok || token == "" {
				deny(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			id, err := t.Verify(token)
			if err != nil {
				deny(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin gates a route behind the admin role. It assumes
// Middleware already ran.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		if !ok {
			deny(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		if !id.IsAdmin() {
			deny(w, http.StatusForbidden, "not authorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
