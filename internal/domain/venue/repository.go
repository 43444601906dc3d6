package venue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
	"github.com/venuebook/venuebook-api/internal/pkg/database"
)

// Repository defines venue data access interface
type Repository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	Update(ctx context.Context, venue *Venue) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	ListActive(ctx context.Context) ([]*Venue, error)
	ListAll(ctx context.Context) ([]*Venue, error)
	AppendImage(ctx context.Context, id uuid.UUID, url string) error

	AddBlockedDates(ctx context.Context, venueID uuid.UUID, blocks []BlockedDate) error
	RemoveBlockedDates(ctx context.Context, venueID uuid.UUID, days []caldate.Date) (int64, error)
	BlockedVenueIDs(ctx context.Context, day caldate.Date) ([]uuid.UUID, error)
}

type repository struct {
	db *sqlx.DB
}

const venueSelectColumns = `
	id, name, description, location, capacity, price_per_day,
	amenities, images, owner, is_active, created_at, updated_at
`

// NewRepository creates new venue repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, v *Venue) error {
	query := `
		INSERT INTO venues (
			id, name, description, location, capacity, price_per_day,
			amenities, images, owner, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		v.ID, v.Name, v.Description, v.Location, v.Capacity, v.PricePerDay,
		v.Amenities, v.Images, v.Owner, v.IsActive,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		logWriteError(err, "create venue", v.ID)
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the venue does not exist
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	query := `SELECT ` + venueSelectColumns + ` FROM venues WHERE id = $1`

	var v Venue
	if err := r.db.GetContext(ctx, &v, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}

	if err := r.attachBlockedDates(ctx, []*Venue{&v}); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) Update(ctx context.Context, v *Venue) error {
	query := `
		UPDATE venues SET
			name = $2, description = $3, location = $4, capacity = $5,
			price_per_day = $6, amenities = $7, images = $8, is_active = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		v.ID, v.Name, v.Description, v.Location, v.Capacity,
		v.PricePerDay, v.Amenities, v.Images, v.IsActive,
	).Scan(&v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrVenueNotFound
	}
	if err != nil {
		logWriteError(err, "update venue", v.ID)
		return fmt.Errorf("update venue: %w", err)
	}
	return nil
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE venues SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set venue active: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// ListActive returns active venues, most recently created first
func (r *repository) ListActive(ctx context.Context) ([]*Venue, error) {
	return r.list(ctx, `SELECT `+venueSelectColumns+` FROM venues WHERE is_active = TRUE ORDER BY created_at DESC, id`)
}

// ListAll returns every venue including inactive ones
func (r *repository) ListAll(ctx context.Context) ([]*Venue, error) {
	return r.list(ctx, `SELECT `+venueSelectColumns+` FROM venues ORDER BY created_at DESC, id`)
}

func (r *repository) list(ctx context.Context, query string) ([]*Venue, error) {
	var venues []*Venue
	if err := r.db.SelectContext(ctx, &venues, query); err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	if err := r.attachBlockedDates(ctx, venues); err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *repository) AppendImage(ctx context.Context, id uuid.UUID, url string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE venues SET images = array_append(images, $2), updated_at = NOW() WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("append venue image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// AddBlockedDates inserts every block in one transaction
func (r *repository) AddBlockedDates(ctx context.Context, venueID uuid.UUID, blocks []BlockedDate) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		// Lock the venue row so concurrent edits see a consistent list
		var id uuid.UUID
		if err := tx.GetContext(ctx, &id, `SELECT id FROM venues WHERE id = $1 FOR UPDATE`, venueID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("lock venue: %w", err)
		}

		stmt, err := tx.PreparexContext(ctx, `
			INSERT INTO venue_blocked_dates (id, venue_id, blocked_on, reason)
			VALUES ($1, $2, $3::date, $4)
		`)
		if err != nil {
			return fmt.Errorf("prepare block insert: %w", err)
		}
		defer stmt.Close()

		for _, b := range blocks {
			if _, err := stmt.ExecContext(ctx, b.ID, venueID, b.Date.String(), b.Reason); err != nil {
				logWriteError(err, "block date", venueID)
				return fmt.Errorf("insert blocked date: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx, `UPDATE venues SET updated_at = NOW() WHERE id = $1`, venueID)
		return err
	})
}

// RemoveBlockedDates deletes every block on any of days and returns the count
func (r *repository) RemoveBlockedDates(ctx context.Context, venueID uuid.UUID, days []caldate.Date) (int64, error) {
	var removed int64
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM venue_blocked_dates WHERE venue_id = $1 AND blocked_on = ANY($2::date[])`,
			venueID, pq.StringArray(dayStrings(days)))
		if err != nil {
			return fmt.Errorf("delete blocked dates: %w", err)
		}
		removed, _ = res.RowsAffected()

		_, err = tx.ExecContext(ctx, `UPDATE venues SET updated_at = NOW() WHERE id = $1`, venueID)
		return err
	})
	return removed, err
}

// BlockedVenueIDs returns the distinct venues blocked on day
func (r *repository) BlockedVenueIDs(ctx context.Context, day caldate.Date) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids,
		`SELECT DISTINCT venue_id FROM venue_blocked_dates WHERE blocked_on = $1::date`, day.String())
	if err != nil {
		return nil, fmt.Errorf("blocked venue ids: %w", err)
	}
	return ids, nil
}

func (r *repository) attachBlockedDates(ctx context.Context, venues []*Venue) error {
	if len(venues) == 0 {
		return nil
	}

	ids := make([]string, 0, len(venues))
	byID := make(map[uuid.UUID]*Venue, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID.String())
		byID[v.ID] = v
		v.UnavailableDates = []BlockedDate{}
	}

	var blocks []BlockedDate
	err := r.db.SelectContext(ctx, &blocks, `
		SELECT id, venue_id, blocked_on, reason, created_at
		FROM venue_blocked_dates
		WHERE venue_id = ANY($1::uuid[])
		ORDER BY blocked_on, created_at
	`, pq.StringArray(ids))
	if err != nil {
		return fmt.Errorf("load blocked dates: %w", err)
	}

	for _, b := range blocks {
		if v, ok := byID[b.VenueID]; ok {
			v.UnavailableDates = append(v.UnavailableDates, b)
		}
	}
	return nil
}

func dayStrings(days []caldate.Date) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.String())
	}
	return out
}

func logWriteError(err error, op string, venueID uuid.UUID) {
	event := log.Error().Err(err).Str("op", op).Str("venue_id", venueID.String())
	if pqErr := database.PQError(err); pqErr != nil {
		event = event.Str("pg_code", string(pqErr.Code)).Str("constraint", pqErr.Constraint)
	}
	event.Msg("venue write failed")
}
