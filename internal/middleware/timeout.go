package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/venuebook/venuebook-api/internal/pkg/response"
)

type timeoutWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *timeoutWriter) WriteHeader(code int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// Timeout puts a deadline on the request context. The handler runs on the
// calling goroutine; if it returns past the deadline without writing, the
// client gets a 503 envelope. A non-positive timeout disables it.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			tw := &timeoutWriter{ResponseWriter: w}
			next.ServeHTTP(tw, r.WithContext(ctx))

			if !tw.wroteHeader && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				response.Error(w, http.StatusServiceUnavailable, "REQUEST_TIMEOUT", "Request timed out")
			}
		})
	}
}
