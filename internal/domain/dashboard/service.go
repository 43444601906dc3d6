package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
)

// Stats represents admin dashboard statistics
type Stats struct {
	TotalVenues      int             `json:"totalVenues" db:"total_venues"`
	TotalBookings    int             `json:"totalBookings" db:"total_bookings"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue" db:"total_revenue"`
	UpcomingBookings int             `json:"upcomingBookings" db:"upcoming_bookings"`
}

// Source loads raw statistics as of a calendar day
type Source interface {
	Stats(ctx context.Context, today caldate.Date) (*Stats, error)
}

type sqlSource struct {
	db *sqlx.DB
}

// NewSource creates a PostgreSQL backed stats source
func NewSource(db *sqlx.DB) Source {
	return &sqlSource{db: db}
}

// Stats counts active venues, all bookings, revenue of non-cancelled
// bookings and non-cancelled bookings from today on
func (s *sqlSource) Stats(ctx context.Context, today caldate.Date) (*Stats, error) {
	var stats Stats
	err := s.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM venues WHERE is_active) AS total_venues,
			(SELECT COUNT(*) FROM bookings) AS total_bookings,
			(SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE status <> 'cancelled') AS total_revenue,
			(SELECT COUNT(*) FROM bookings WHERE status <> 'cancelled' AND booking_date >= $1::date) AS upcoming_bookings
	`, today.String())
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}

// Service provides dashboard statistics
type Service struct {
	source Source
	now    func() time.Time
}

// NewService creates dashboard service
func NewService(source Source) *Service {
	return &Service{source: source, now: time.Now}
}

// GetStats returns statistics as of today
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	return s.source.Stats(ctx, caldate.Today(s.now()))
}
