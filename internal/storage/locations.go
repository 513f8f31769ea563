package storage

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Listing types accepted for a location.
const (
	ListingTypeRent = "For Rent"
	ListingTypeSale = "For Sale"
)

var (
	ListingTypes  = []string{ListingTypeRent, ListingTypeSale}
	PropertyTypes = []string{"Apartment", "Villa", "Studio", "Penthouse", "Townhouse"}
)

// LocationImage is one picture of a location, shown in Order.
type LocationImage struct {
	URL   string `json:"url"`
	Alt   string `json:"alt"`
	Order int    `json:"order"`
}

// Location is a row of the properties table.
type Location struct {
	ID           uuid.UUID       `json:"id"`
	ListingID    string          `json:"listing_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        float64         `json:"price"`
	Area         float64         `json:"area"`
	Location     string          `json:"location"`
	ListingType  string          `json:"listing_type"`
	PropertyType string          `json:"property_type"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	AgencyFee    float64         `json:"agency_fee"`
	Images       []LocationImage `json:"images"`
	Features     []string        `json:"features"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

// LocationInput is what the caller provides to create a location.
type LocationInput struct {
	ListingID    string
	Title        string
	Description  string
	Price        float64
	Area         float64
	Location     string
	ListingType  string
	PropertyType string
	Bedrooms     int
	Bathrooms    int
	AgencyFee    float64
	Images       []LocationImage
	Features     []string
}

// Validate checks the input and reports every problem found.
func (in LocationInput) Validate() error {
	var errs []error
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if !slices.Contains(ListingTypes, in.ListingType) {
		errs = append(errs, fmt.Errorf("listing_type must be one of %s", strings.Join(ListingTypes, ", ")))
	}
	if !slices.Contains(PropertyTypes, in.PropertyType) {
		errs = append(errs, fmt.Errorf("property_type must be one of %s", strings.Join(PropertyTypes, ", ")))
	}
	if in.Price < 0 || in.Area < 0 || in.AgencyFee < 0 {
		errs = append(errs, errors.New("price, area and agency_fee must not be negative"))
	}
	if in.Bedrooms < 0 || in.Bathrooms < 0 {
		errs = append(errs, errors.New("bedrooms and bathrooms must not be negative"))
	}
	return errors.Join(errs...)
}

// LocationPage is one page of a newest-first location listing.
type LocationPage struct {
	Locations  []Location `json:"locations"`
	NextCursor string     `json:"next_cursor,omitempty"`
	HasMore    bool       `json:"has_more"`
}
