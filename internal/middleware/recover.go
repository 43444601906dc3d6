package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/venuebook/venuebook-api/internal/pkg/logger"
	"github.com/venuebook/venuebook-api/internal/pkg/response"
)

// Recover turns a handler panic into a 500 envelope. The panic is logged
// through the request logger so it carries request_id.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Handler panicked")

			response.InternalError(w)
		}()

		next.ServeHTTP(w, r)
	})
}
