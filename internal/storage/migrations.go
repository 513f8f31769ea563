package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LocationsTable holds the locations catalogue.
const LocationsTable = "properties"

// SubscribersTable holds change-notification subscribers.
const SubscribersTable = "subscribers"

// RunMigrations creates the locations and subscribers tables and their
// indexes if missing.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			listing_id    TEXT NOT NULL DEFAULT '',
			title         TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			price         DOUBLE PRECISION NOT NULL DEFAULT 0,
			area          DOUBLE PRECISION NOT NULL DEFAULT 0,
			location      TEXT NOT NULL DEFAULT '',
			listing_type  TEXT NOT NULL,
			property_type TEXT NOT NULL,
			bedrooms      INTEGER NOT NULL DEFAULT 0,
			bathrooms     INTEGER NOT NULL DEFAULT 0,
			agency_fee    DOUBLE PRECISION NOT NULL DEFAULT 0,
			images        JSONB NOT NULL DEFAULT '[]',
			features      JSONB NOT NULL DEFAULT '[]',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ
		);

		CREATE INDEX IF NOT EXISTS idx_%[1]s_created
			ON %[1]s (created_at DESC, id DESC);
	`, LocationsTable)

	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("migrate %s: %w", LocationsTable, err)
	}

	ddl = fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id          UUID PRIMARY KEY,
			name        TEXT NOT NULL,
			endpoint    TEXT NOT NULL,
			topics      TEXT[] NOT NULL DEFAULT '{}',
			status      TEXT NOT NULL DEFAULT 'active',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`, SubscribersTable)

	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("migrate %s: %w", SubscribersTable, err)
	}
	return nil
}
