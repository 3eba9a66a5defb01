package middleware

import (
	"crypto/subtle"
	"net/http"
)

// SharedKey returns middleware that rejects requests missing the configured
// shared key with 403. The key is read from the "key" parameter (query or
// form body, so mail links and the confirmation form both carry it) or the
// X-Api-Key header. An empty configured key disables the check.
func SharedKey(key string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := r.FormValue("key")
			if got == "" {
				got = r.Header.Get("X-Api-Key")
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
