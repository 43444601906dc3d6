package venue

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/venuebook/venuebook-api/internal/pkg/apperror"
	"github.com/venuebook/venuebook-api/internal/pkg/response"
	"github.com/venuebook/venuebook-api/internal/pkg/storage"
	"github.com/venuebook/venuebook-api/internal/pkg/validator"
)

// Handler handles venue HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates venue handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /venues
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVenueRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	v, err := h.service.Create(r.Context(), &req)
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.Created(w, ResponseFromEntity(v))
}

// GetByID handles GET /venues/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	v, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OK(w, ResponseFromEntity(v))
}

// ListAll handles GET /venues/all
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	venues, err := h.service.ListAll(r.Context())
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OK(w, ResponsesFromEntities(venues))
}

// Update handles PUT /venues/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateVenueRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	v, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OK(w, ResponseFromEntity(v))
}

// Delete handles DELETE /venues/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OKWithMessage(w, "Venue deactivated successfully", nil)
}

// BlockDates handles POST /venues/{id}/block-dates
func (h *Handler) BlockDates(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req BlockDatesRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	v, err := h.service.BlockDates(r.Context(), id, req.Dates, req.Reason)
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OKWithMessage(w, "Dates blocked successfully", ResponseFromEntity(v))
}

// UnblockDates handles DELETE /venues/{id}/unblock-dates
func (h *Handler) UnblockDates(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UnblockDatesRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	v, err := h.service.UnblockDates(r.Context(), id, req.Dates)
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OKWithMessage(w, "Dates unblocked successfully", ResponseFromEntity(v))
}

// UploadImage handles POST /venues/{id}/images (multipart field "image")
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+1<<20)
	if err := r.ParseMultipartForm(storage.MaxImageSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "Missing image file")
		return
	}
	defer file.Close()

	data, _, err := storage.ValidateImage(file, storage.MaxImageSize)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge), errors.Is(err, storage.ErrInvalidMimeType), errors.Is(err, storage.ErrEmptyFile):
			apperror.Respond(r.Context(), w, ErrImageNotSupported)
		default:
			response.BadRequest(w, "Failed to read image")
		}
		return
	}

	v, err := h.service.UploadImage(r.Context(), id, data)
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.Created(w, ResponseFromEntity(v))
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid venue ID")
		return uuid.Nil, false
	}
	return id, true
}
