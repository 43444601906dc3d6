package venue

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
)

type fakeRepo struct {
	mu     sync.Mutex
	venues map[uuid.UUID]*Venue
	blocks []BlockedDate
	clock  time.Time

	addBlocksErr error
	addCalls     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{venues: map[uuid.UUID]*Venue{}, clock: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRepo) Create(ctx context.Context, v *Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.CreatedAt = f.tick()
	v.UpdatedAt = v.CreatedAt
	cp := *v
	f.venues[v.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.venues[id]
	if !ok {
		return nil, nil
	}
	return f.withBlocks(v), nil
}

func (f *fakeRepo) withBlocks(v *Venue) *Venue {
	cp := *v
	cp.Amenities = append([]string(nil), v.Amenities...)
	cp.Images = append([]string(nil), v.Images...)
	cp.UnavailableDates = []BlockedDate{}
	for _, b := range f.blocks {
		if b.VenueID == v.ID {
			cp.UnavailableDates = append(cp.UnavailableDates, b)
		}
	}
	return &cp
}

func (f *fakeRepo) Update(ctx context.Context, v *Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.venues[v.ID]; !ok {
		return ErrVenueNotFound
	}
	v.UpdatedAt = f.tick()
	cp := *v
	cp.UnavailableDates = nil
	f.venues[v.ID] = &cp
	return nil
}

func (f *fakeRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.venues[id]
	if !ok {
		return ErrVenueNotFound
	}
	v.IsActive = active
	return nil
}

func (f *fakeRepo) list(active bool) []*Venue {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*Venue{}
	for _, v := range f.venues {
		if active && !v.IsActive {
			continue
		}
		out = append(out, f.withBlocks(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeRepo) ListActive(ctx context.Context) ([]*Venue, error) { return f.list(true), nil }

func (f *fakeRepo) ListAll(ctx context.Context) ([]*Venue, error) { return f.list(false), nil }

func (f *fakeRepo) AppendImage(ctx context.Context, id uuid.UUID, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.venues[id]
	if !ok {
		return ErrVenueNotFound
	}
	v.Images = append(v.Images, url)
	return nil
}

func (f *fakeRepo) AddBlockedDates(ctx context.Context, venueID uuid.UUID, blocks []BlockedDate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if f.addBlocksErr != nil {
		return f.addBlocksErr
	}
	f.blocks = append(f.blocks, blocks...)
	return nil
}

func (f *fakeRepo) RemoveBlockedDates(ctx context.Context, venueID uuid.UUID, days []caldate.Date) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.blocks[:0]
	var removed int64
	for _, b := range f.blocks {
		if b.VenueID == venueID && caldate.Contains(days, b.Date) {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	f.blocks = kept
	return removed, nil
}

func (f *fakeRepo) BlockedVenueIDs(ctx context.Context, day caldate.Date) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	for _, b := range f.blocks {
		if b.Date == day && !seen[b.VenueID] {
			seen[b.VenueID] = true
			ids = append(ids, b.VenueID)
		}
	}
	return ids, nil
}
