package auth

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/venuebook/venuebook-api/internal/middleware"
	"github.com/venuebook/venuebook-api/internal/pkg/response"
	"github.com/venuebook/venuebook-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials, ErrAdminNotConfigured:
			response.Unauthorized(w, "Invalid email or password")
		default:
			log.Error().
				Err(err).
				Str("request_id", middleware.GetRequestID(r.Context())).
				Msg("login failed with internal error")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	response.OK(w, MeResponse{
		Email: middleware.GetEmail(r.Context()),
		Role:  middleware.GetRole(r.Context()),
	})
}
