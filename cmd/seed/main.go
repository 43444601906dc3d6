// Command seed inserts the sample venues. Venues whose name already exists
// are skipped. Run with "reset" to delete all bookings, blocks and venues
// first.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/venuebook/venuebook-api/internal/config"
	"github.com/venuebook/venuebook-api/internal/domain/venue"
	"github.com/venuebook/venuebook-api/internal/pkg/database"
	"github.com/venuebook/venuebook-api/internal/pkg/logger"
)

const placeholderImage = "/placeholder.svg?height=300&width=400"

func sampleVenues() []venue.CreateVenueRequest {
	price := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	return []venue.CreateVenueRequest{
		{
			Name:        "Grand Ballroom",
			Description: "Elegant ballroom perfect for weddings and corporate events",
			Location:    "Downtown Convention Center",
			Capacity:    200,
			PricePerDay: price(2500),
			Amenities:   []string{"Audio/Visual Equipment", "Catering Kitchen", "Dance Floor", "Parking"},
			Images:      []string{placeholderImage},
		},
		{
			Name:        "Garden Pavilion",
			Description: "Beautiful outdoor venue with garden views",
			Location:    "City Park",
			Capacity:    150,
			PricePerDay: price(1800),
			Amenities:   []string{"Outdoor Seating", "Garden Views", "Tent Option", "Parking"},
			Images:      []string{placeholderImage},
		},
		{
			Name:        "Conference Hall A",
			Description: "Modern conference facility for business meetings",
			Location:    "Business District",
			Capacity:    100,
			PricePerDay: price(1200),
			Amenities:   []string{"Projector", "Whiteboard", "WiFi", "Coffee Station"},
			Images:      []string{placeholderImage},
		},
		{
			Name:        "Rooftop Terrace",
			Description: "Stunning rooftop venue with city skyline views",
			Location:    "Midtown Hotel",
			Capacity:    80,
			PricePerDay: price(2000),
			Amenities:   []string{"City Views", "Bar Setup", "Lounge Seating", "Climate Control"},
			Images:      []string{placeholderImage},
		},
	}
}

func main() {
	cfg := config.Load()
	_ = logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	if len(os.Args) > 1 && os.Args[1] == "reset" {
		for _, table := range []string{"bookings", "venue_blocked_dates", "venues"} {
			if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				log.Fatal().Err(err).Str("table", table).Msg("Failed to clear table")
			}
		}
		log.Info().Msg("Existing venues and bookings removed")
	}

	repo := venue.NewRepository(db)
	service := venue.NewService(repo)

	existing, err := repo.ListAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list venues")
	}
	seen := make(map[string]bool, len(existing))
	for _, v := range existing {
		seen[v.Name] = true
	}

	created := 0
	for _, req := range sampleVenues() {
		if seen[req.Name] {
			log.Info().Str("name", req.Name).Msg("Venue exists, skipping")
			continue
		}
		req := req
		if _, err := service.Create(ctx, &req); err != nil {
			log.Fatal().Err(err).Str("name", req.Name).Msg("Failed to create venue")
		}
		created++
	}

	log.Info().Int("created", created).Msg("Seeding complete")
}
