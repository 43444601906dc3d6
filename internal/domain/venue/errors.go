package venue

import (
	"fmt"

	"github.com/venuebook/venuebook-api/internal/pkg/apperror"
)

var (
	ErrVenueNotFound     = apperror.NotFound("Venue not found")
	ErrNoDates           = apperror.InvalidInput("At least one date is required")
	ErrInvalidCapacity   = apperror.InvalidInput("Capacity must be at least 1")
	ErrInvalidPrice      = apperror.InvalidInput("Price per day must be a number greater than or equal to 0")
	ErrPriceRequired     = apperror.InvalidInput("Price per day is required")
	ErrPricePrecision    = apperror.InvalidInput("Price per day can have at most 2 decimal places")
	ErrEmptyName         = apperror.InvalidInput("Name cannot be empty")
	ErrEmptyDescription  = apperror.InvalidInput("Description cannot be empty")
	ErrEmptyLocation     = apperror.InvalidInput("Location cannot be empty")
	ErrImageNotSupported = apperror.InvalidInput("Image must be a JPEG, PNG, GIF or WebP file up to 10 MB")
)

func invalidDate(value string) error {
	return apperror.InvalidInput(fmt.Sprintf("Invalid date: %q", value))
}
