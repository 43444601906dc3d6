package booking

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

// fakeCatalog implements availability.VenueCatalog
type fakeCatalog struct {
	mu     sync.Mutex
	venues map[uuid.UUID]*venue.Venue
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{venues: map[uuid.UUID]*venue.Venue{}}
}

func (c *fakeCatalog) add(name string, capacity int, price int64) *venue.Venue {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := &venue.Venue{
		ID:               uuid.New(),
		Name:             name,
		Description:      name,
		Location:         "Downtown",
		Capacity:         capacity,
		PricePerDay:      decimal.NewFromInt(price),
		Owner:            venue.DefaultOwner,
		IsActive:         true,
		UnavailableDates: []venue.BlockedDate{},
	}
	c.venues[v.ID] = v
	return v
}

func (c *fakeCatalog) block(venueID uuid.UUID, day caldate.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.venues[venueID]
	v.UnavailableDates = append(v.UnavailableDates, venue.BlockedDate{ID: uuid.New(), VenueID: venueID, Date: day, Reason: venue.DefaultBlockReason})
}

func (c *fakeCatalog) GetByID(ctx context.Context, id uuid.UUID) (*venue.Venue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.venues[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (c *fakeCatalog) ListActive(ctx context.Context) ([]*venue.Venue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*venue.Venue
	for _, v := range c.venues {
		if v.IsActive {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (c *fakeCatalog) BlockedVenueIDs(ctx context.Context, day caldate.Date) ([]uuid.UUID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ids []uuid.UUID
	for _, v := range c.venues {
		if v.IsBlocked(day) {
			ids = append(ids, v.ID)
		}
	}
	return ids, nil
}

// fakeRepo implements Repository in memory and enforces the one live
// booking per venue and day constraint like the database does
type fakeRepo struct {
	mu       sync.Mutex
	catalog  *fakeCatalog
	bookings map[uuid.UUID]*Booking
	clock    time.Time
	creates  int
}

func newFakeRepo(catalog *fakeCatalog) *fakeRepo {
	return &fakeRepo{
		catalog:  catalog,
		bookings: map[uuid.UUID]*Booking{},
		clock:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepo) slotTakenLocked(exclude uuid.UUID, venueID uuid.UUID, day caldate.Date) bool {
	for _, b := range r.bookings {
		if b.ID != exclude && b.VenueID == venueID && b.BookingDate == day && b.Status.IsLive() {
			return true
		}
	}
	return false
}

func (r *fakeRepo) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if _, ok := r.catalog.venues[b.VenueID]; !ok {
		return venue.ErrVenueNotFound
	}
	if r.slotTakenLocked(uuid.Nil, b.VenueID, b.BookingDate) {
		return ErrAlreadyBooked
	}
	r.clock = r.clock.Add(time.Minute)
	b.CreatedAt, b.UpdatedAt = r.clock, r.clock
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) detailsLocked(b *Booking) *Details {
	d := &Details{Booking: *b}
	if v, ok := r.catalog.venues[b.VenueID]; ok {
		d.VenueName, d.VenueLocation = v.Name, v.Location
	}
	return d
}

func (r *fakeRepo) GetDetails(ctx context.Context, id uuid.UUID) (*Details, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return r.detailsLocked(b), nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Details, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*Details{}
	for _, b := range r.bookings {
		if filter.VenueID != nil && b.VenueID != *filter.VenueID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, r.detailsLocked(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	if status.IsLive() && r.slotTakenLocked(id, b.VenueID, b.BookingDate) {
		return nil, ErrAlreadyBooked
	}
	b.Status = status
	r.clock = r.clock.Add(time.Minute)
	b.UpdatedAt = r.clock
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) ExistsActive(ctx context.Context, venueID uuid.UUID, day caldate.Date) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slotTakenLocked(uuid.Nil, venueID, day), nil
}

func (r *fakeRepo) BookedVenueIDs(ctx context.Context, day caldate.Date) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for _, b := range r.bookings {
		if b.BookingDate == day && b.Status.IsLive() {
			ids = append(ids, b.VenueID)
		}
	}
	return ids, nil
}

func (r *fakeRepo) BookedDatesInRange(ctx context.Context, venueID uuid.UUID, start, end caldate.Date) ([]caldate.Date, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var days []caldate.Date
	for _, b := range r.bookings {
		if b.VenueID == venueID && b.Status.IsLive() && b.BookingDate.Between(start, end) {
			days = append(days, b.BookingDate)
		}
	}
	return days, nil
}

type recordedEvent struct {
	Type    string
	Payload Event
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Payload: payload.(Event)})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
