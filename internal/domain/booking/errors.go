package booking

import (
	"fmt"

	"github.com/venuebook/venuebook-api/internal/pkg/apperror"
)

var (
	ErrBookingNotFound = apperror.NotFound("Booking not found")
	ErrAlreadyBooked   = apperror.Conflict("Venue is already booked for this date")
	ErrDateBlocked     = apperror.Conflict("Venue is not available on this date")
	ErrSlotBusy        = apperror.Conflict("Another booking for this venue and date is in progress, please try again")

	ErrPastDate          = apperror.InvalidInput("Booking date cannot be in the past")
	ErrMissingDate       = apperror.InvalidInput("Booking date is required")
	ErrMissingName       = apperror.InvalidInput("Customer name is required")
	ErrInvalidEmail      = apperror.InvalidInput("A valid customer email is required")
	ErrMissingPhone      = apperror.InvalidInput("Customer phone is required")
	ErrMissingEventType  = apperror.InvalidInput("Event type is required")
	ErrInvalidGuestCount = apperror.InvalidInput("Guest count must be at least 1")
	ErrInvalidStatus     = apperror.InvalidInput("Invalid status. Must be: pending, confirmed, or cancelled")
)

func capacityExceeded(capacity int) error {
	return apperror.InvalidInput(fmt.Sprintf("Guest count exceeds venue capacity of %d", capacity))
}
