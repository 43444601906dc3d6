package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/venuebook/venuebook-api/internal/pkg/apperror"
	"github.com/venuebook/venuebook-api/internal/pkg/response"
	"github.com/venuebook/venuebook-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	// validated as uuid above
	venueID, _ := uuid.Parse(req.VenueID)

	d, err := h.service.Create(r.Context(), CreateInput{
		VenueID:         venueID,
		BookingDate:     req.BookingDate,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		EventType:       req.EventType,
		GuestCount:      req.GuestCount,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.Created(w, ResponseFromDetails(d))
}

// GetByID handles GET /bookings/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	d, err := h.service.Get(r.Context(), id)
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OK(w, ResponseFromDetails(d))
}

// List handles GET /bookings?venueId=&status=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var filter Filter

	q := r.URL.Query()
	if raw := q.Get("venueId"); raw != "" {
		venueID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid venue ID")
			return
		}
		filter.VenueID = &venueID
	}
	if raw := q.Get("status"); raw != "" {
		status := Status(raw)
		filter.Status = &status
	}

	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OK(w, ResponsesFromDetails(list))
}

// UpdateStatus handles PUT /bookings/{id}
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	d, err := h.service.UpdateStatus(r.Context(), id, Status(req.Status))
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OKWithMessage(w, "Booking status updated", ResponseFromDetails(d))
}

// Cancel handles DELETE /bookings/{id}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	d, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OKWithMessage(w, "Booking cancelled successfully", ResponseFromDetails(d))
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return uuid.Nil, false
	}
	return id, true
}
