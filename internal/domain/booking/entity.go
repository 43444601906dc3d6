package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
)

// Status represents booking status (matches bookings.status check)
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// IsLive reports whether a booking in this status holds its slot
func (s Status) IsLive() bool {
	return s != StatusCancelled
}

// Booking represents a reservation of one venue for one calendar day
type Booking struct {
	ID              uuid.UUID       `db:"id"`
	VenueID         uuid.UUID       `db:"venue_id"`
	CustomerName    string          `db:"customer_name"`
	CustomerEmail   string          `db:"customer_email"`
	CustomerPhone   string          `db:"customer_phone"`
	BookingDate     caldate.Date    `db:"booking_date"`
	EventType       string          `db:"event_type"`
	GuestCount      int             `db:"guest_count"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Status          Status          `db:"status"`
	SpecialRequests string          `db:"special_requests"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// Details is a booking joined with the current name and location of its venue
type Details struct {
	Booking
	VenueName     string `db:"venue_name"`
	VenueLocation string `db:"venue_location"`
}
