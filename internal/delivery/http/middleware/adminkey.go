package middleware

import (
	"crypto/subtle"
	"net/http"

	h "sixspa/internal/delivery/http/helpers"
)

// RequireAdminKey returns a wrapper that compares the "key" query parameter
// against the configured admin secret. On mismatch it responds with 401 and
// does not call next. An empty configured secret rejects every request.
// The comparison is constant-time.
func RequireAdminKey(adminKey string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			supplied := r.URL.Query().Get("key")
			if adminKey == "" || supplied == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing or invalid admin key")
				return
			}
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(adminKey)) != 1 {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing or invalid admin key")
				return
			}
			next(w, r)
		}
	}
}
