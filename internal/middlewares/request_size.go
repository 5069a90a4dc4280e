package middlewares

import (
	"net/http"
)

// DefaultMaxRequestSize bounds request bodies. Task payloads top out around
// 1.5KB (255-character title plus 1000-character description, both possibly
// multibyte), so 1MB leaves generous headroom.
const DefaultMaxRequestSize int64 = 1 << 20

// RequestSizeLimitMiddleware limits the size of request bodies
// maxRequestSize specifies the maximum request body size in bytes
func RequestSizeLimitMiddleware(maxRequestSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxRequestSize {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				w.Write([]byte(`{"error":"request body too large"}`))
				return
			}

			// Chunked requests carry no Content-Length; the reader enforces
			// the cap as the body streams in
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
			next.ServeHTTP(w, r)
		})
	}
}
