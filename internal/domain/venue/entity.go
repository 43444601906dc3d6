package venue

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
)

// Lifecycle is the tagged state of a venue. Venues are never hard-deleted.
type Lifecycle string

const (
	LifecycleActive   Lifecycle = "active"
	LifecycleInactive Lifecycle = "inactive"
)

// DefaultOwner is stored when a venue is created without an owner
const DefaultOwner = "admin"

// DefaultBlockReason is stored when dates are blocked without a reason
const DefaultBlockReason = "Blocked by admin"

// Venue represents a bookable venue (matches venues table)
type Venue struct {
	ID          uuid.UUID       `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Location    string          `db:"location"`
	Capacity    int             `db:"capacity"`
	PricePerDay decimal.Decimal `db:"price_per_day"`
	Amenities   pq.StringArray  `db:"amenities"`
	Images      pq.StringArray  `db:"images"`
	Owner       string          `db:"owner"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`

	// Loaded from venue_blocked_dates
	UnavailableDates []BlockedDate `db:"-"`
}

// BlockedDate is an admin-imposed block on one calendar day
type BlockedDate struct {
	ID        uuid.UUID    `db:"id"`
	VenueID   uuid.UUID    `db:"venue_id"`
	Date      caldate.Date `db:"blocked_on"`
	Reason    string       `db:"reason"`
	CreatedAt time.Time    `db:"created_at"`
}

// Lifecycle derives the tagged state from the active flag
func (v *Venue) Lifecycle() Lifecycle {
	if v.IsActive {
		return LifecycleActive
	}
	return LifecycleInactive
}

// IsBlocked reports whether day matches any blocked date
func (v *Venue) IsBlocked(day caldate.Date) bool {
	for _, b := range v.UnavailableDates {
		if b.Date == day {
			return true
		}
	}
	return false
}

// BlockedDays returns the blocked days in [start, end], ordered by day
func (v *Venue) BlockedDays(start, end caldate.Date) []caldate.Date {
	days := make([]caldate.Date, 0)
	for _, b := range v.UnavailableDates {
		if b.Date.Between(start, end) {
			days = append(days, b.Date)
		}
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
