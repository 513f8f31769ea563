package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/Botopia-SAS/DashboardSafestays/internal/storage"
	"github.com/Botopia-SAS/DashboardSafestays/internal/trigger"
)

// --- Huma Input/Output types ---

type ListLocationsInput struct {
	Limit  int    `query:"limit" minimum:"0" maximum:"500" doc:"Page size (default 100)"`
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous page"`
}

type ListLocationsOutput struct {
	Body struct {
		Success    bool               `json:"success"`
		Data       []storage.Location `json:"data"`
		NextCursor string             `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
		HasMore    bool               `json:"has_more"`
	}
}

type CreateLocationBody struct {
	ListingID    string                  `json:"listing_id" required:"false" doc:"Code of the matching sheet listing"`
	Title        string                  `json:"title" required:"false" doc:"Display title; must not be blank"`
	Description  string                  `json:"description" required:"false"`
	Price        float64                 `json:"price" required:"false"`
	Area         float64                 `json:"area" required:"false" doc:"Square meters"`
	Location     string                  `json:"location" required:"false"`
	ListingType  string                  `json:"listing_type" required:"false" doc:"For Rent or For Sale"`
	PropertyType string                  `json:"property_type" required:"false" doc:"Apartment, Villa, Studio, Penthouse or Townhouse"`
	Bedrooms     int                     `json:"bedrooms" required:"false"`
	Bathrooms    int                     `json:"bathrooms" required:"false"`
	AgencyFee    float64                 `json:"agency_fee" required:"false"`
	Images       []storage.LocationImage `json:"images" required:"false"`
	Features     []string                `json:"features" required:"false"`
}

type CreateLocationInput struct {
	Body CreateLocationBody
}

type LocationOutput struct {
	Body struct {
		Success bool             `json:"success"`
		Data    storage.Location `json:"data"`
	}
}

type LocationIDInput struct {
	ID string `path:"id" doc:"Location UUID"`
}

// --- Handler ---

type LocationHandler struct {
	store    storage.LocationStore
	notifier *trigger.Notifier
	logger   *slog.Logger
}

func NewLocationHandler(store storage.LocationStore, notifier *trigger.Notifier, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{store: store, notifier: notifier, logger: logger}
}

func registerLocationRoutes(api huma.API, h *LocationHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-locations",
		Method:      http.MethodGet,
		Path:        "/api/locations",
		Summary:     "List locations, newest first",
		Tags:        []string{"locations"},
	}, h.ListLocations)

	huma.Register(api, huma.Operation{
		OperationID:   "create-location",
		Method:        http.MethodPost,
		Path:          "/api/locations",
		Summary:       "Create a location",
		Tags:          []string{"locations"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateLocation)

	huma.Register(api, huma.Operation{
		OperationID: "get-location",
		Method:      http.MethodGet,
		Path:        "/api/locations/{id}",
		Summary:     "Get a location by ID",
		Tags:        []string{"locations"},
	}, h.GetLocation)

	huma.Register(api, huma.Operation{
		OperationID: "delete-location",
		Method:      http.MethodDelete,
		Path:        "/api/locations/{id}",
		Summary:     "Delete a location",
		Tags:        []string{"locations"},
	}, h.DeleteLocation)
}

func (h *LocationHandler) ListLocations(ctx context.Context, input *ListLocationsInput) (*ListLocationsOutput, error) {
	page, err := h.store.List(ctx, input.Limit, input.Cursor)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidCursor) {
			return nil, fail(http.StatusBadRequest, "Invalid cursor")
		}
		h.logger.Error("failed to list locations", "error", err)
		return nil, fail(http.StatusInternalServerError, "Failed to fetch locations")
	}

	out := &ListLocationsOutput{}
	out.Body.Success = true
	out.Body.Data = page.Locations
	out.Body.NextCursor = page.NextCursor
	out.Body.HasMore = page.HasMore
	return out, nil
}

func (h *LocationHandler) CreateLocation(ctx context.Context, input *CreateLocationInput) (*LocationOutput, error) {
	b := input.Body
	in := storage.LocationInput{
		ListingID:    b.ListingID,
		Title:        b.Title,
		Description:  b.Description,
		Price:        b.Price,
		Area:         b.Area,
		Location:     b.Location,
		ListingType:  b.ListingType,
		PropertyType: b.PropertyType,
		Bedrooms:     b.Bedrooms,
		Bathrooms:    b.Bathrooms,
		AgencyFee:    b.AgencyFee,
		Images:       b.Images,
		Features:     b.Features,
	}
	if err := in.Validate(); err != nil {
		return nil, fail(http.StatusBadRequest, err.Error())
	}

	loc, err := h.store.Create(ctx, in)
	if err != nil {
		h.logger.Error("failed to create location", "title", in.Title, "error", err)
		return nil, fail(http.StatusInternalServerError, "Failed to create location")
	}

	h.logger.Info("location created", "id", loc.ID, "title", loc.Title)
	h.notifier.Notify(trigger.ChangeEvent{Topic: trigger.TopicLocations, Action: trigger.ActionCreated, Key: loc.ID.String()})

	out := &LocationOutput{}
	out.Body.Success = true
	out.Body.Data = *loc
	return out, nil
}

func (h *LocationHandler) GetLocation(ctx context.Context, input *LocationIDInput) (*LocationOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, fail(http.StatusBadRequest, "Invalid location id")
	}

	loc, err := h.store.Get(ctx, id)
	if errors.Is(err, storage.ErrLocationNotFound) {
		return nil, fail(http.StatusNotFound, "Location not found")
	}
	if err != nil {
		h.logger.Error("failed to get location", "id", id, "error", err)
		return nil, fail(http.StatusInternalServerError, "Failed to fetch location")
	}

	out := &LocationOutput{}
	out.Body.Success = true
	out.Body.Data = *loc
	return out, nil
}

func (h *LocationHandler) DeleteLocation(ctx context.Context, input *LocationIDInput) (*MessageOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, fail(http.StatusBadRequest, "Invalid location id")
	}

	err = h.store.Delete(ctx, id)
	if errors.Is(err, storage.ErrLocationNotFound) {
		return nil, fail(http.StatusNotFound, "Location not found")
	}
	if err != nil {
		h.logger.Error("failed to delete location", "id", id, "error", err)
		return nil, fail(http.StatusInternalServerError, "Failed to delete location")
	}

	h.logger.Info("location deleted", "id", id)
	h.notifier.Notify(trigger.ChangeEvent{Topic: trigger.TopicLocations, Action: trigger.ActionDeleted, Key: id.String()})
	return &MessageOutput{Body: succeeded("Location deleted successfully")}, nil
}
