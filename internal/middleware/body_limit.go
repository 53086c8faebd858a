package middleware

import "net/http"

// MaxBodySize returns a middleware that caps request body size.
// Oversized bodies cause the JSON decoder downstream to fail, which
// surfaces as a 400 to the client.
func MaxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
