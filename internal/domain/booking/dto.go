package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
)

// CreateBookingRequest for POST /bookings
type CreateBookingRequest struct {
	VenueID         string `json:"venueId" validate:"required,uuid"`
	BookingDate     string `json:"bookingDate" validate:"required,calendar_date"`
	CustomerName    string `json:"customerName" validate:"required,max=200"`
	CustomerEmail   string `json:"customerEmail" validate:"required,email,max=254"`
	CustomerPhone   string `json:"customerPhone" validate:"required,max=50"`
	EventType       string `json:"eventType" validate:"required,max=100"`
	GuestCount      int    `json:"guestCount" validate:"required,gte=1"`
	SpecialRequests string `json:"specialRequests" validate:"omitempty,max=2000"`
}

// UpdateStatusRequest for PUT /bookings/{id}
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,booking_status"`
}

// VenueSummary is the populated venue reference of a booking
type VenueSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID              string          `json:"id"`
	Venue           VenueSummary    `json:"venue"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone"`
	BookingDate     caldate.Date    `json:"bookingDate"`
	EventType       string          `json:"eventType"`
	GuestCount      int             `json:"guestCount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          Status          `json:"status"`
	SpecialRequests string          `json:"specialRequests"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ResponseFromDetails converts a populated booking to its API shape
func ResponseFromDetails(d *Details) *BookingResponse {
	return &BookingResponse{
		ID: d.ID.String(),
		Venue: VenueSummary{
			ID:       d.VenueID.String(),
			Name:     d.VenueName,
			Location: d.VenueLocation,
		},
		CustomerName:    d.CustomerName,
		CustomerEmail:   d.CustomerEmail,
		CustomerPhone:   d.CustomerPhone,
		BookingDate:     d.BookingDate,
		EventType:       d.EventType,
		GuestCount:      d.GuestCount,
		TotalAmount:     d.TotalAmount,
		Status:          d.Status,
		SpecialRequests: d.SpecialRequests,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ResponsesFromDetails converts a list of bookings
func ResponsesFromDetails(list []*Details) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(list))
	for _, d := range list {
		out = append(out, ResponseFromDetails(d))
	}
	return out
}
