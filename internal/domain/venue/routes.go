package venue

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns venue router. Listing and availability are served by the
// availability engine and passed in.
func (h *Handler) Routes(adminOnly func(http.Handler) http.Handler, list, availability http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.Get("/", list)
	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/availability", availability)

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		r.Get("/all", h.ListAll)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/block-dates", h.BlockDates)
		r.Delete("/{id}/unblock-dates", h.UnblockDates)
		r.Post("/{id}/images", h.UploadImage)
	})

	return r
}
