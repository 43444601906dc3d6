package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the idempotent schema for venues, blocked dates and bookings
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Info().Msg("Database schema is up to date")
	return nil
}

// UniqueViolation is the PostgreSQL error code for unique_violation
const UniqueViolation = "23505"

// ForeignKeyViolation is the PostgreSQL error code for foreign_key_violation
const ForeignKeyViolation = "23503"
