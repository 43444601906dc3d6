package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebook/venuebook-api/internal/domain/availability"
	"github.com/venuebook/venuebook-api/internal/pkg/apperror"
	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
	"github.com/venuebook/venuebook-api/internal/pkg/events"
	"github.com/venuebook/venuebook-api/internal/pkg/logger"
	"github.com/venuebook/venuebook-api/internal/pkg/metrics"
	"github.com/venuebook/venuebook-api/internal/pkg/slotlock"
	"github.com/venuebook/venuebook-api/internal/pkg/validator"
)

// CreateInput holds the customer-supplied fields of a new booking
type CreateInput struct {
	VenueID         uuid.UUID
	BookingDate     string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	EventType       string
	GuestCount      int
	SpecialRequests string
}

// Event is the payload of every booking event
type Event struct {
	BookingID      uuid.UUID       `json:"bookingId"`
	VenueID        uuid.UUID       `json:"venueId"`
	BookingDate    caldate.Date    `json:"bookingDate"`
	Status         Status          `json:"status"`
	PreviousStatus Status          `json:"previousStatus,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	CustomerEmail  string          `json:"customerEmail"`
}

// Service handles booking business logic
type Service struct {
	repo      Repository
	engine    *availability.Engine
	locker    *slotlock.Locker
	publisher events.Publisher
	now       func() time.Time
}

// NewService creates booking service
func NewService(repo Repository, engine *availability.Engine) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		publisher: events.Noop{},
		now:       time.Now,
	}
}

// SetLocker enables the cross-instance slot lock
func (s *Service) SetLocker(l *slotlock.Locker) {
	s.locker = l
}

// SetPublisher sets the booking event publisher
func (s *Service) SetPublisher(p events.Publisher) {
	if p == nil {
		p = events.Noop{}
	}
	s.publisher = p
}

// Create books a venue for one calendar day
func (s *Service) Create(ctx context.Context, in CreateInput) (*Details, error) {
	b, day, err := s.prepare(in)
	if err != nil {
		metrics.BookingOutcome(metrics.OutcomeInvalid)
		return nil, err
	}

	v, verdict, err := s.engine.Check(ctx, in.VenueID, day)
	if err != nil {
		recordOutcome(err)
		return nil, err
	}
	switch verdict {
	case availability.Booked:
		metrics.BookingOutcome(metrics.OutcomeConflict)
		return nil, ErrAlreadyBooked
	case availability.Blocked:
		metrics.BookingOutcome(metrics.OutcomeConflict)
		return nil, ErrDateBlocked
	}
	if b.GuestCount > v.Capacity {
		metrics.BookingOutcome(metrics.OutcomeInvalid)
		return nil, capacityExceeded(v.Capacity)
	}

	release, err := s.locker.Acquire(ctx, v.ID, day)
	if err != nil {
		metrics.BookingOutcome(metrics.OutcomeConflict)
		if errors.Is(err, slotlock.ErrSlotBusy) {
			return nil, ErrSlotBusy
		}
		return nil, err
	}
	defer release()

	// Another instance may have committed between Check and Acquire.
	taken, err := s.repo.ExistsActive(ctx, v.ID, day)
	if err != nil {
		recordOutcome(err)
		return nil, err
	}
	if taken {
		metrics.BookingOutcome(metrics.OutcomeConflict)
		return nil, ErrAlreadyBooked
	}

	b.TotalAmount = v.PricePerDay
	if err := s.repo.Create(ctx, b); err != nil {
		recordOutcome(err)
		return nil, err
	}
	metrics.BookingOutcome(metrics.OutcomeCreated)

	logger.FromContext(ctx).Info().
		Str("booking_id", b.ID.String()).
		Str("venue_id", v.ID.String()).
		Str("date", day.String()).
		Int("guests", b.GuestCount).
		Msg("booking created")
	s.publish(ctx, events.BookingCreated, b, "")

	return &Details{Booking: *b, VenueName: v.Name, VenueLocation: v.Location}, nil
}

// Get returns a booking with its venue name and location
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Details, error) {
	d, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrBookingNotFound
	}
	return d, nil
}

// List returns bookings newest first
func (s *Service) List(ctx context.Context, filter Filter) ([]*Details, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

// UpdateStatus overwrites the status. Any transition is accepted; reviving a
// cancelled booking whose day was taken since fails with ErrAlreadyBooked.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Details, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrBookingNotFound
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrBookingNotFound
	}

	logger.FromContext(ctx).Info().
		Str("booking_id", id.String()).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Msg("booking status updated")

	eventType := events.BookingStatusChanged
	if status == StatusCancelled {
		eventType = events.BookingCancelled
		if current.Status != StatusCancelled {
			metrics.BookingOutcome(metrics.OutcomeCancelled)
		}
	}
	s.publish(ctx, eventType, updated, current.Status)

	return s.Get(ctx, id)
}

// Cancel marks a booking cancelled and frees its day. Cancelling twice is a
// no-op.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Details, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == StatusCancelled {
		return current, nil
	}
	return s.UpdateStatus(ctx, id, StatusCancelled)
}

// prepare validates input before any store access
func (s *Service) prepare(in CreateInput) (*Booking, caldate.Date, error) {
	b := &Booking{
		ID:              uuid.New(),
		VenueID:         in.VenueID,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		EventType:       strings.TrimSpace(in.EventType),
		GuestCount:      in.GuestCount,
		SpecialRequests: strings.TrimSpace(in.SpecialRequests),
		Status:          StatusConfirmed,
	}

	switch {
	case b.CustomerName == "":
		return nil, caldate.Date{}, ErrMissingName
	case b.CustomerEmail == "" || validator.ValidateVar(b.CustomerEmail, "email") != nil:
		return nil, caldate.Date{}, ErrInvalidEmail
	case b.CustomerPhone == "":
		return nil, caldate.Date{}, ErrMissingPhone
	case b.EventType == "":
		return nil, caldate.Date{}, ErrMissingEventType
	case b.GuestCount < 1:
		return nil, caldate.Date{}, ErrInvalidGuestCount
	}

	if strings.TrimSpace(in.BookingDate) == "" {
		return nil, caldate.Date{}, ErrMissingDate
	}
	day, err := caldate.Parse(in.BookingDate)
	if err != nil {
		return nil, caldate.Date{}, apperror.InvalidInput("Invalid booking date: " + strings.TrimSpace(in.BookingDate))
	}
	if day.Before(caldate.Today(s.now())) {
		return nil, caldate.Date{}, ErrPastDate
	}
	b.BookingDate = day

	return b, day, nil
}

func (s *Service) publish(ctx context.Context, eventType string, b *Booking, previous Status) {
	payload := Event{
		BookingID:      b.ID,
		VenueID:        b.VenueID,
		BookingDate:    b.BookingDate,
		Status:         b.Status,
		PreviousStatus: previous,
		TotalAmount:    b.TotalAmount,
		CustomerEmail:  b.CustomerEmail,
	}
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("event", eventType).Str("booking_id", b.ID.String()).Msg("failed to publish booking event")
	}
}

func recordOutcome(err error) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		metrics.BookingOutcome(metrics.OutcomeNotFound)
	case errors.Is(err, apperror.ErrConflict):
		metrics.BookingOutcome(metrics.OutcomeConflict)
	case errors.Is(err, apperror.ErrInvalidInput):
		metrics.BookingOutcome(metrics.OutcomeInvalid)
	default:
		metrics.BookingOutcome(metrics.OutcomeError)
	}
}
