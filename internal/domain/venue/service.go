package venue

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/venuebook/venuebook-api/internal/pkg/caldate"
	"github.com/venuebook/venuebook-api/internal/pkg/imaging"
	"github.com/venuebook/venuebook-api/internal/pkg/metrics"
	"github.com/venuebook/venuebook-api/internal/pkg/storage"
)

// Service handles venue catalog and date-block business logic
type Service struct {
	repo      Repository
	storage   storage.Storage
	processor *imaging.Processor
}

// NewService creates venue service
func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		processor: imaging.NewProcessor(imaging.DefaultConfig()),
	}
}

// SetStorage enables image uploads
func (s *Service) SetStorage(st storage.Storage) {
	s.storage = st
}

// Create validates and persists a new active venue
func (s *Service) Create(ctx context.Context, req *CreateVenueRequest) (*Venue, error) {
	v := &Venue{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		Capacity:    req.Capacity,
		Amenities:   cleanList(req.Amenities),
		Images:      cleanList(req.Images),
		Owner:       strings.TrimSpace(req.Owner),
		IsActive:    true,
	}
	if req.PricePerDay == nil {
		return nil, ErrPriceRequired
	}
	v.PricePerDay = *req.PricePerDay
	if v.Owner == "" {
		v.Owner = DefaultOwner
	}

	if err := validateVenue(v); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	v.UnavailableDates = []BlockedDate{}

	log.Info().Str("venue_id", v.ID.String()).Str("name", v.Name).Msg("venue created")
	return v, nil
}

// Update applies a partial update and re-validates the result
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateVenueRequest) (*Venue, error) {
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		v.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		v.Description = strings.TrimSpace(*req.Description)
	}
	if req.Location != nil {
		v.Location = strings.TrimSpace(*req.Location)
	}
	if req.Capacity != nil {
		v.Capacity = *req.Capacity
	}
	if req.PricePerDay != nil {
		v.PricePerDay = *req.PricePerDay
	}
	if req.Amenities != nil {
		v.Amenities = cleanList(req.Amenities)
	}
	if req.Images != nil {
		v.Images = cleanList(req.Images)
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}

	if err := validateVenue(v); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete soft-deletes a venue. Bookings keep referencing it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	log.Info().Str("venue_id", id.String()).Msg("venue deactivated")
	return nil
}

// GetByID returns a venue whether or not it is active
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVenueNotFound
	}
	return v, nil
}

// ListAll returns every venue for the management view
func (s *Service) ListAll(ctx context.Context) ([]*Venue, error) {
	return s.repo.ListAll(ctx)
}

// BlockDates appends one block per date. All dates are parsed before
// anything is written; already blocked days get a second entry.
func (s *Service) BlockDates(ctx context.Context, id uuid.UUID, dates []string, reason string) (*Venue, error) {
	days, err := parseDates(dates)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultBlockReason
	}

	blocks := make([]BlockedDate, 0, len(days))
	for _, d := range days {
		blocks = append(blocks, BlockedDate{ID: uuid.New(), VenueID: id, Date: d, Reason: reason})
	}
	if err := s.repo.AddBlockedDates(ctx, id, blocks); err != nil {
		return nil, err
	}
	metrics.DatesBlocked(len(blocks))

	log.Info().Str("venue_id", id.String()).Int("count", len(blocks)).Str("reason", reason).Msg("dates blocked")
	return s.GetByID(ctx, id)
}

// UnblockDates removes every block matching any of dates. Days that were
// never blocked are ignored.
func (s *Service) UnblockDates(ctx context.Context, id uuid.UUID, dates []string) (*Venue, error) {
	days, err := parseDates(dates)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	removed, err := s.repo.RemoveBlockedDates(ctx, id, days)
	if err != nil {
		return nil, err
	}
	metrics.DatesUnblocked(removed)

	log.Info().Str("venue_id", id.String()).Int64("removed", removed).Msg("dates unblocked")
	return s.GetByID(ctx, id)
}

// UploadImage resizes an uploaded image, stores it and appends its URL
func (s *Service) UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*Venue, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	img, err := s.processor.Process(data)
	if err != nil {
		return nil, ErrImageNotSupported
	}

	key := fmt.Sprintf("venues/%s/%s.jpg", id, uuid.New())
	if err := s.storage.Put(ctx, key, bytes.NewReader(img.Data), img.ContentType); err != nil {
		return nil, fmt.Errorf("store venue image: %w", err)
	}

	url := s.storage.GetURL(key)
	if err := s.repo.AppendImage(ctx, id, url); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("failed to remove orphaned venue image")
		}
		return nil, err
	}

	log.Info().Str("venue_id", id.String()).Str("url", url).Msg("venue image uploaded")
	return s.GetByID(ctx, id)
}

// pricePlaces matches the scale of venues.price_per_day
const pricePlaces = 2

func validateVenue(v *Venue) error {
	switch {
	case v.Name == "":
		return ErrEmptyName
	case v.Description == "":
		return ErrEmptyDescription
	case v.Location == "":
		return ErrEmptyLocation
	case v.Capacity < 1:
		return ErrInvalidCapacity
	case v.PricePerDay.IsNegative():
		return ErrInvalidPrice
	case !v.PricePerDay.Equal(v.PricePerDay.Round(pricePlaces)):
		return ErrPricePrecision
	}
	return nil
}

func parseDates(values []string) ([]caldate.Date, error) {
	if len(values) == 0 {
		return nil, ErrNoDates
	}
	days := make([]caldate.Date, 0, len(values))
	for _, raw := range values {
		d, err := caldate.Parse(raw)
		if err != nil {
			return nil, invalidDate(raw)
		}
		days = append(days, d)
	}
	return days, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
