package availability

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebook/venuebook-api/internal/domain/venue"
	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
)

// memCatalog implements venue.Repository in memory
type memCatalog struct {
	mu     sync.Mutex
	venues map[uuid.UUID]*venue.Venue
	blocks []venue.BlockedDate
	clock  time.Time
}

func newMemCatalog() *memCatalog {
	return &memCatalog{venues: map[uuid.UUID]*venue.Venue{}, clock: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *memCatalog) addVenue(name string, capacity int, active bool) *venue.Venue {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock = c.clock.Add(time.Minute)
	v := &venue.Venue{
		ID:          uuid.New(),
		Name:        name,
		Description: name + " description",
		Location:    "Somewhere",
		Capacity:    capacity,
		PricePerDay: decimal.NewFromInt(1000),
		Owner:       venue.DefaultOwner,
		IsActive:    active,
		CreatedAt:   c.clock,
		UpdatedAt:   c.clock,
	}
	c.venues[v.ID] = v
	return v
}

func (c *memCatalog) block(venueID uuid.UUID, day caldate.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = append(c.blocks, venue.BlockedDate{ID: uuid.New(), VenueID: venueID, Date: day, Reason: venue.DefaultBlockReason})
}

func (c *memCatalog) snapshot(v *venue.Venue) *venue.Venue {
	cp := *v
	cp.UnavailableDates = []venue.BlockedDate{}
	for _, b := range c.blocks {
		if b.VenueID == v.ID {
			cp.UnavailableDates = append(cp.UnavailableDates, b)
		}
	}
	return &cp
}

func (c *memCatalog) Create(ctx context.Context, v *venue.Venue) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock = c.clock.Add(time.Minute)
	v.CreatedAt, v.UpdatedAt = c.clock, c.clock
	cp := *v
	c.venues[v.ID] = &cp
	return nil
}

func (c *memCatalog) GetByID(ctx context.Context, id uuid.UUID) (*venue.Venue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.venues[id]
	if !ok {
		return nil, nil
	}
	return c.snapshot(v), nil
}

func (c *memCatalog) Update(ctx context.Context, v *venue.Venue) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *v
	c.venues[v.ID] = &cp
	return nil
}

func (c *memCatalog) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.venues[id]
	if !ok {
		return venue.ErrVenueNotFound
	}
	v.IsActive = active
	return nil
}

func (c *memCatalog) list(onlyActive bool) []*venue.Venue {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []*venue.Venue{}
	for _, v := range c.venues {
		if onlyActive && !v.IsActive {
			continue
		}
		out = append(out, c.snapshot(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (c *memCatalog) ListActive(ctx context.Context) ([]*venue.Venue, error) { return c.list(true), nil }

func (c *memCatalog) ListAll(ctx context.Context) ([]*venue.Venue, error) { return c.list(false), nil }

func (c *memCatalog) AppendImage(ctx context.Context, id uuid.UUID, url string) error { return nil }

func (c *memCatalog) AddBlockedDates(ctx context.Context, venueID uuid.UUID, blocks []venue.BlockedDate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = append(c.blocks, blocks...)
	return nil
}

func (c *memCatalog) RemoveBlockedDates(ctx context.Context, venueID uuid.UUID, days []caldate.Date) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var kept []venue.BlockedDate
	var removed int64
	for _, b := range c.blocks {
		if b.VenueID == venueID && caldate.Contains(days, b.Date) {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	c.blocks = kept
	return removed, nil
}

func (c *memCatalog) BlockedVenueIDs(ctx context.Context, day caldate.Date) ([]uuid.UUID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ids []uuid.UUID
	for _, b := range c.blocks {
		if b.Date == day {
			ids = append(ids, b.VenueID)
		}
	}
	return ids, nil
}

type ledgerEntry struct {
	venueID   uuid.UUID
	day       caldate.Date
	cancelled bool
}

type memLedger struct {
	mu      sync.Mutex
	entries []*ledgerEntry
}

func (l *memLedger) book(venueID uuid.UUID, day caldate.Date) *ledgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := &ledgerEntry{venueID: venueID, day: day}
	l.entries = append(l.entries, e)
	return e
}

func (l *memLedger) ExistsActive(ctx context.Context, venueID uuid.UUID, day caldate.Date) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.venueID == venueID && e.day == day && !e.cancelled {
			return true, nil
		}
	}
	return false, nil
}

func (l *memLedger) BookedVenueIDs(ctx context.Context, day caldate.Date) ([]uuid.UUID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var ids []uuid.UUID
	for _, e := range l.entries {
		if e.day == day && !e.cancelled {
			ids = append(ids, e.venueID)
		}
	}
	return ids, nil
}

func (l *memLedger) BookedDatesInRange(ctx context.Context, venueID uuid.UUID, start, end caldate.Date) ([]caldate.Date, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var days []caldate.Date
	for _, e := range l.entries {
		if e.venueID == venueID && !e.cancelled && e.day.Between(start, end) {
			days = append(days, e.day)
		}
	}
	return days, nil
}
