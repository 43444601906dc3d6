package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/venuebook/venuebook-api/internal/domain/availability"
	"github.com/venuebook/venuebook-api/internal/domain/venue"
	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
	"github.com/venuebook/venuebook-api/internal/pkg/database"
)

// activeSlotConstraint is the partial unique index on live bookings
const activeSlotConstraint = "uq_bookings_active_slot"

// Filter narrows List results
type Filter struct {
	VenueID *uuid.UUID
	Status  *Status
}

// Repository defines booking data access interface
type Repository interface {
	availability.BookingLedger

	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetDetails(ctx context.Context, id uuid.UUID) (*Details, error)
	List(ctx context.Context, filter Filter) ([]*Details, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Booking, error)
}

type repository struct {
	db *sqlx.DB
}

const bookingSelectColumns = `
	b.id, b.venue_id, b.customer_name, b.customer_email, b.customer_phone,
	b.booking_date, b.event_type, b.guest_count, b.total_amount, b.status,
	b.special_requests, b.created_at, b.updated_at
`

// NewRepository creates new booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (
			id, venue_id, customer_name, customer_email, customer_phone,
			booking_date, event_type, guest_count, total_amount, status,
			special_requests
		) VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		b.ID, b.VenueID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.BookingDate.String(), b.EventType, b.GuestCount, b.TotalAmount, b.Status,
		b.SpecialRequests,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "create booking", b.ID)
	}
	return nil
}

// GetByID returns nil, nil when the booking does not exist
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT ` + bookingSelectColumns + ` FROM bookings b WHERE b.id = $1`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// GetDetails returns nil, nil when the booking does not exist
func (r *repository) GetDetails(ctx context.Context, id uuid.UUID) (*Details, error) {
	query := `
		SELECT ` + bookingSelectColumns + `, v.name AS venue_name, v.location AS venue_location
		FROM bookings b
		JOIN venues v ON v.id = b.venue_id
		WHERE b.id = $1
	`
	var d Details
	if err := r.db.GetContext(ctx, &d, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking details: %w", err)
	}
	return &d, nil
}

// List returns bookings newest first
func (r *repository) List(ctx context.Context, filter Filter) ([]*Details, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.VenueID != nil {
		args = append(args, *filter.VenueID)
		where = append(where, fmt.Sprintf("b.venue_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf("b.status = $%d", len(args)))
	}

	query := `
		SELECT ` + bookingSelectColumns + `, v.name AS venue_name, v.location AS venue_location
		FROM bookings b
		JOIN venues v ON v.id = b.venue_id
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY b.created_at DESC, b.id"

	var list []*Details
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return list, nil
}

// UpdateStatus returns nil, nil when the booking does not exist
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Booking, error) {
	query := `
		UPDATE bookings b SET status = $2, updated_at = NOW()
		WHERE b.id = $1
		RETURNING ` + bookingSelectColumns

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err, "update booking status", id)
	}
	return &b, nil
}

func (r *repository) ExistsActive(ctx context.Context, venueID uuid.UUID, day caldate.Date) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE venue_id = $1 AND booking_date = $2::date AND status <> 'cancelled'
		)
	`, venueID, day.String())
	if err != nil {
		return false, fmt.Errorf("check booking exists: %w", err)
	}
	return exists, nil
}

func (r *repository) BookedVenueIDs(ctx context.Context, day caldate.Date) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, `
		SELECT DISTINCT venue_id FROM bookings
		WHERE booking_date = $1::date AND status <> 'cancelled'
	`, day.String())
	if err != nil {
		return nil, fmt.Errorf("booked venue ids: %w", err)
	}
	return ids, nil
}

func (r *repository) BookedDatesInRange(ctx context.Context, venueID uuid.UUID, start, end caldate.Date) ([]caldate.Date, error) {
	var days []caldate.Date
	err := r.db.SelectContext(ctx, &days, `
		SELECT booking_date FROM bookings
		WHERE venue_id = $1
		  AND booking_date BETWEEN $2::date AND $3::date
		  AND status <> 'cancelled'
		ORDER BY booking_date
	`, venueID, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("booked dates in range: %w", err)
	}
	return days, nil
}

// mapWriteError turns constraint violations into domain errors
func mapWriteError(err error, op string, bookingID uuid.UUID) error {
	if database.IsUniqueViolation(err, activeSlotConstraint) {
		return ErrAlreadyBooked
	}

	pqErr := database.PQError(err)
	if pqErr != nil && string(pqErr.Code) == database.ForeignKeyViolation {
		return venue.ErrVenueNotFound
	}

	event := log.Error().Err(err).Str("op", op).Str("booking_id", bookingID.String())
	if pqErr != nil {
		event = event.Str("pg_code", string(pqErr.Code)).Str("constraint", pqErr.Constraint)
	}
	event.Msg("booking write failed")
	return fmt.Errorf("%s: %w", op, err)
}
