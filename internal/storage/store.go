package storage

import (
	"context"
	"errors"

	"github.com/Botopia-SAS/DashboardSafestays/internal/listing"
	"github.com/google/uuid"
)

var (
	// ErrListingNotFound is returned when no sheet row carries the requested code.
	ErrListingNotFound = errors.New("listing not found")

	// ErrCodeRequired is returned when a listing without a code is added.
	ErrCodeRequired = errors.New("listing code is required")

	// ErrLocationNotFound is returned when a location lookup finds no matching row.
	ErrLocationNotFound = errors.New("location not found")

	ErrInvalidCursor = errors.New("invalid cursor")
)

// ListingStore is the key-based view of the properties sheet.
type ListingStore interface {
	// ListAll returns every data row in sheet order.
	ListAll(ctx context.Context) ([]listing.Record, error)

	// Search returns the rows matching every set field of f.
	Search(ctx context.Context, f listing.Filter) ([]listing.Record, error)

	// GetByCode returns the first row whose code equals code.
	GetByCode(ctx context.Context, code string) Result[listing.Record]

	// Add appends r as a new row. Duplicate codes are not checked.
	Add(ctx context.Context, r listing.Record) Result[struct{}]

	// Update overwrites the first row whose code equals code.
	Update(ctx context.Context, code string, r listing.Record) Result[struct{}]

	// Delete removes the first row whose code equals code.
	Delete(ctx context.Context, code string) Result[struct{}]
}

// LocationStore persists the locations catalogue.
type LocationStore interface {
	// List returns locations newest first, limit per page.
	List(ctx context.Context, limit int, cursor string) (*LocationPage, error)

	// Create inserts a location and returns the stored row.
	Create(ctx context.Context, in LocationInput) (*Location, error)

	// Get returns a location by id.
	Get(ctx context.Context, id uuid.UUID) (*Location, error)

	// Delete removes a location by id.
	Delete(ctx context.Context, id uuid.UUID) error
}
