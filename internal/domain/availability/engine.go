// Package availability answers whether venues can be booked on a day by
// combining the venue catalog's blocked dates with the booking ledger.
// It never writes.
package availability

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/venuebook/venuebook-api/internal/domain/venue"
	"github.com/venuebook/venuebook-api/internal/pkg/apperror"
	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
	"github.com/venuebook/venuebook-api/internal/pkg/metrics"
)

// VenueCatalog is the read side of venue storage used by the engine
type VenueCatalog interface {
	GetByID(ctx context.Context, id uuid.UUID) (*venue.Venue, error)
	ListActive(ctx context.Context) ([]*venue.Venue, error)
	BlockedVenueIDs(ctx context.Context, day caldate.Date) ([]uuid.UUID, error)
}

// BookingLedger is the read side of booking storage. Every method only
// considers non-cancelled bookings.
type BookingLedger interface {
	ExistsActive(ctx context.Context, venueID uuid.UUID, day caldate.Date) (bool, error)
	BookedVenueIDs(ctx context.Context, day caldate.Date) ([]uuid.UUID, error)
	BookedDatesInRange(ctx context.Context, venueID uuid.UUID, start, end caldate.Date) ([]caldate.Date, error)
}

// Verdict is the outcome of a single-day check
type Verdict int

const (
	Available Verdict = iota
	Booked
	Blocked
)

func (v Verdict) String() string {
	switch v {
	case Booked:
		return "booked"
	case Blocked:
		return "blocked"
	default:
		return "available"
	}
}

var ErrInvalidRange = apperror.InvalidInput("Start date must not be after end date")

// RangeReport lists unavailable days of one venue in an inclusive range.
// AllUnavailable is BookedDates followed by BlockedDates, not deduplicated.
type RangeReport struct {
	VenueID        uuid.UUID
	VenueName      string
	Start          caldate.Date
	End            caldate.Date
	BookedDates    []caldate.Date
	BlockedDates   []caldate.Date
	AllUnavailable []caldate.Date
}

// Engine answers availability questions
type Engine struct {
	venues   VenueCatalog
	bookings BookingLedger
}

// NewEngine creates availability engine
func NewEngine(venues VenueCatalog, bookings BookingLedger) *Engine {
	return &Engine{venues: venues, bookings: bookings}
}

// Check resolves an active venue and reports why day is or is not free.
// A booked day wins over a blocked one.
func (e *Engine) Check(ctx context.Context, venueID uuid.UUID, day caldate.Date) (*venue.Venue, Verdict, error) {
	v, err := e.venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, Available, err
	}
	if v == nil || !v.IsActive {
		return nil, Available, venue.ErrVenueNotFound
	}

	booked, err := e.bookings.ExistsActive(ctx, venueID, day)
	if err != nil {
		return nil, Available, err
	}
	if booked {
		return v, Booked, nil
	}
	if v.IsBlocked(day) {
		return v, Blocked, nil
	}
	return v, Available, nil
}

// IsAvailable reports whether an active venue has neither a live booking
// nor a block on day
func (e *Engine) IsAvailable(ctx context.Context, venueID uuid.UUID, day caldate.Date) (bool, error) {
	_, verdict, err := e.Check(ctx, venueID, day)
	if err != nil {
		return false, err
	}
	available := verdict == Available
	metrics.AvailabilityChecked(available)
	return available, nil
}

// ListAvailableVenues returns active venues, newest first. With a day,
// venues booked or blocked on that day are excluded.
func (e *Engine) ListAvailableVenues(ctx context.Context, day *caldate.Date) ([]*venue.Venue, error) {
	venues, err := e.venues.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return venues, nil
	}

	booked, err := e.bookings.BookedVenueIDs(ctx, *day)
	if err != nil {
		return nil, err
	}
	blocked, err := e.venues.BlockedVenueIDs(ctx, *day)
	if err != nil {
		return nil, err
	}

	unavailable := make(map[uuid.UUID]struct{}, len(booked)+len(blocked))
	for _, id := range booked {
		unavailable[id] = struct{}{}
	}
	for _, id := range blocked {
		unavailable[id] = struct{}{}
	}

	out := make([]*venue.Venue, 0, len(venues))
	for _, v := range venues {
		if _, skip := unavailable[v.ID]; !skip {
			out = append(out, v)
		}
	}
	return out, nil
}

// CheckRange reports booked and blocked days of a venue in [start, end].
// Inactive venues are still reported.
func (e *Engine) CheckRange(ctx context.Context, venueID uuid.UUID, start, end caldate.Date) (*RangeReport, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	v, err := e.venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, venue.ErrVenueNotFound
	}

	booked, err := e.bookings.BookedDatesInRange(ctx, venueID, start, end)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(booked, func(i, j int) bool { return booked[i].Before(booked[j]) })
	blocked := v.BlockedDays(start, end)

	all := make([]caldate.Date, 0, len(booked)+len(blocked))
	all = append(all, booked...)
	all = append(all, blocked...)

	return &RangeReport{
		VenueID:        v.ID,
		VenueName:      v.Name,
		Start:          start,
		End:            end,
		BookedDates:    nonNilDays(booked),
		BlockedDates:   blocked,
		AllUnavailable: all,
	}, nil
}

func nonNilDays(days []caldate.Date) []caldate.Date {
	if days == nil {
		return []caldate.Date{}
	}
	return days
}
