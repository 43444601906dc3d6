package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/venuebook/venuebook-api/internal/pkg/apperror"
	"github.com/venuebook/venuebook-api/internal/pkg/response"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates new dashboard handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetStats returns aggregated stats for the admin dashboard
// GET /api/v1/dashboard/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OK(w, stats)
}

// Routes returns dashboard routes
func Routes(h *Handler, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(adminOnly)

	r.Get("/stats", h.GetStats)

	return r
}
