package availability

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/venuebook/venuebook-api/internal/domain/venue"
	"github.com/venuebook/venuebook-api/internal/pkg/apperror"
	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
	"github.com/venuebook/venuebook-api/internal/pkg/response"
)

// RangeResponse is the body of GET /venues/{id}/availability
type RangeResponse struct {
	VenueID             string         `json:"venueId"`
	VenueName           string         `json:"venueName"`
	StartDate           caldate.Date   `json:"startDate"`
	EndDate             caldate.Date   `json:"endDate"`
	BookedDates         []caldate.Date `json:"bookedDates"`
	BlockedDates        []caldate.Date `json:"blockedDates"`
	AllUnavailableDates []caldate.Date `json:"allUnavailableDates"`
}

// DayResponse is the body of GET /venues/{id}/availability?date=
type DayResponse struct {
	VenueID   string       `json:"venueId"`
	Date      caldate.Date `json:"date"`
	Available bool         `json:"available"`
}

// Handler serves availability queries
type Handler struct {
	engine *Engine
}

// NewHandler creates availability handler
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// ListVenues handles GET /venues?date=YYYY-MM-DD
func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	var day *caldate.Date
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := caldate.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid date. Use YYYY-MM-DD")
			return
		}
		day = &d
	}

	venues, err := h.engine.ListAvailableVenues(r.Context(), day)
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OK(w, venue.ResponsesFromEntities(venues))
}

// VenueAvailability handles GET /venues/{id}/availability. With ?date= it
// answers for one day, otherwise startDate and endDate are required.
func (h *Handler) VenueAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid venue ID")
		return
	}

	q := r.URL.Query()
	if raw := q.Get("date"); raw != "" {
		day, err := caldate.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid date. Use YYYY-MM-DD")
			return
		}
		available, err := h.engine.IsAvailable(r.Context(), id, day)
		if err != nil {
			apperror.Respond(r.Context(), w, err)
			return
		}
		response.OK(w, DayResponse{VenueID: id.String(), Date: day, Available: available})
		return
	}

	if q.Get("startDate") == "" || q.Get("endDate") == "" {
		response.BadRequest(w, "startDate and endDate are required")
		return
	}
	start, err := caldate.Parse(q.Get("startDate"))
	if err != nil {
		response.BadRequest(w, "Invalid startDate. Use YYYY-MM-DD")
		return
	}
	end, err := caldate.Parse(q.Get("endDate"))
	if err != nil {
		response.BadRequest(w, "Invalid endDate. Use YYYY-MM-DD")
		return
	}

	report, err := h.engine.CheckRange(r.Context(), id, start, end)
	if err != nil {
		apperror.Respond(r.Context(), w, err)
		return
	}

	response.OK(w, RangeResponse{
		VenueID:             report.VenueID.String(),
		VenueName:           report.VenueName,
		StartDate:           report.Start,
		EndDate:             report.End,
		BookedDates:         report.BookedDates,
		BlockedDates:        report.BlockedDates,
		AllUnavailableDates: report.AllUnavailable,
	})
}
