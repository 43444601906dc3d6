package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking router. rateLimit guards creation and may be a
// pass-through.
func (h *Handler) Routes(adminOnly, rateLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.With(rateLimit).Post("/", h.Create)
	r.Get("/{id}", h.GetByID)

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		r.Get("/", h.List)
		r.Put("/{id}", h.UpdateStatus)
		r.Delete("/{id}", h.Cancel)
	})

	return r
}
