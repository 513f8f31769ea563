package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultLocationPageSize = 100
	MaxLocationPageSize     = 500
)

const locationColumns = `id, listing_id, title, description, price, area, location,
	listing_type, property_type, bedrooms, bathrooms, agency_fee, images, features,
	created_at, updated_at`

// PostgresLocationStore implements LocationStore using PostgreSQL.
type PostgresLocationStore struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPostgresLocationStore creates a LocationStore backed by pool.
// queryTimeout sets the per-query context deadline; zero means no timeout.
func NewPostgresLocationStore(pool *pgxpool.Pool, queryTimeout time.Duration) *PostgresLocationStore {
	return &PostgresLocationStore{pool: pool, queryTimeout: queryTimeout}
}

// withTimeout derives a child context with the configured query timeout.
func (s *PostgresLocationStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout > 0 {
		return context.WithTimeout(ctx, s.queryTimeout)
	}
	return ctx, func() {}
}

func (s *PostgresLocationStore) List(ctx context.Context, limit int, cursor string) (*LocationPage, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = DefaultLocationPageSize
	}
	if limit > MaxLocationPageSize {
		limit = MaxLocationPageSize
	}

	var (
		after   *time.Time
		afterID *uuid.UUID
	)
	if cursor != "" {
		c, err := DecodeCursor(cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
		}
		after, afterID = &c.CreatedAt, &c.ID
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE $1::timestamptz IS NULL OR (created_at, id) < ($1::timestamptz, $2::uuid)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`, locationColumns, LocationsTable)

	rows, err := s.pool.Query(ctx, query, after, afterID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := make([]Location, 0, limit)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("list locations scan: %w", err)
		}
		locations = append(locations, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations rows: %w", err)
	}

	page := &LocationPage{Locations: locations}
	if len(locations) > limit {
		page.Locations = locations[:limit]
		last := page.Locations[limit-1]
		next, err := (&Cursor{CreatedAt: last.CreatedAt, ID: last.ID}).Encode()
		if err != nil {
			return nil, fmt.Errorf("encode next cursor: %w", err)
		}
		page.NextCursor = next
		page.HasMore = true
	}
	return page, nil
}

func (s *PostgresLocationStore) Create(ctx context.Context, in LocationInput) (*Location, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	images := in.Images
	if images == nil {
		images = []LocationImage{}
	}
	features := in.Features
	if features == nil {
		features = []string{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (listing_id, title, description, price, area, location,
			listing_type, property_type, bedrooms, bathrooms, agency_fee, images, features)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s
	`, LocationsTable, locationColumns)

	row := s.pool.QueryRow(ctx, query,
		in.ListingID, in.Title, in.Description, in.Price, in.Area, in.Location,
		in.ListingType, in.PropertyType, in.Bedrooms, in.Bathrooms, in.AgencyFee,
		images, features,
	)
	l, err := scanLocation(row)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return l, nil
}

func (s *PostgresLocationStore) Get(ctx context.Context, id uuid.UUID) (*Location, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, locationColumns, LocationsTable)

	l, err := scanLocation(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

func (s *PostgresLocationStore) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, LocationsTable), id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLocationNotFound
	}
	return nil
}

func scanLocation(row pgx.Row) (*Location, error) {
	var l Location
	err := row.Scan(
		&l.ID, &l.ListingID, &l.Title, &l.Description, &l.Price, &l.Area, &l.Location,
		&l.ListingType, &l.PropertyType, &l.Bedrooms, &l.Bathrooms, &l.AgencyFee,
		&l.Images, &l.Features, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
