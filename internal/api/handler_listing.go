package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Botopia-SAS/DashboardSafestays/internal/listing"
	"github.com/Botopia-SAS/DashboardSafestays/internal/storage"
	"github.com/Botopia-SAS/DashboardSafestays/internal/trigger"
)

// --- Huma Input/Output types ---

// MeasureField is a sheet cell that holds either a number or free text
// ("2", "2.5", "Studio"). It accepts JSON strings and numbers and always
// renders as the cell text.
type MeasureField struct {
	listing.Measure
}

func (MeasureField) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{
		Description: "Number or free text, rendered as the sheet cell text",
		OneOf: []*huma.Schema{
			{Type: huma.TypeString},
			{Type: huma.TypeNumber},
		},
	}
}

// ListingBody is one row of the properties sheet.
type ListingBody struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Code             string       `json:"code" required:"false" doc:"Unique listing code" example:"SS-101"`
	Available        string       `json:"available" required:"false" doc:"Availability" example:"Yes"`
	Location         string       `json:"location" required:"false" doc:"Neighbourhood or city" example:"Madrid Centro"`
	Date             string       `json:"date" required:"false" doc:"Available-from date, as written in the sheet"`
	Month            MeasureField `json:"month" required:"false" doc:"Minimum stay in months"`
	Price            string       `json:"price" required:"false" doc:"Monthly price, as written in the sheet" example:"€1,500"`
	Beds             MeasureField `json:"beds" required:"false" doc:"Bedrooms"`
	Baths            MeasureField `json:"baths" required:"false" doc:"Bathrooms"`
	Utilities        string       `json:"utilities" required:"false"`
	Mts              MeasureField `json:"mts" required:"false" doc:"Area in square meters"`
	Street           string       `json:"street" required:"false"`
	Number           string       `json:"number" required:"false"`
	Agency           string       `json:"agency" required:"false"`
	ID               string       `json:"id" required:"false" doc:"Agency reference"`
	Brochure         string       `json:"brochure" required:"false"`
	Video            string       `json:"video" required:"false"`
	WhatsappMessage  string       `json:"whatsappMessage" required:"false"`
	Paulina          string       `json:"paulina" required:"false"`
	Alessandra       string       `json:"alessandra" required:"false"`
	Laura            string       `json:"laura" required:"false"`
	Images           []string     `json:"images" required:"false" doc:"Image URLs"`
	AdditionalImages []string     `json:"additionalImages" required:"false" doc:"Additional image URLs"`
	Notes            string       `json:"notes" required:"false"`
}

type ListListingsInput struct {
	Location  string  `query:"location" doc:"Case-insensitive substring of the location"`
	Available string  `query:"available" doc:"Exact availability value"`
	Beds      int     `query:"beds" minimum:"0" doc:"Exact number of bedrooms"`
	MinPrice  float64 `query:"minPrice" minimum:"0" doc:"Lowest monthly price"`
	MaxPrice  float64 `query:"maxPrice" minimum:"0" doc:"Highest monthly price"`
}

type ListListingsOutput struct {
	Body struct {
		Success bool          `json:"success"`
		Data    []ListingBody `json:"data"`
	}
}

type GetListingInput struct {
	Code string `path:"code" doc:"Listing code"`
}

type GetListingOutput struct {
	Body struct {
		Success bool        `json:"success"`
		Data    ListingBody `json:"data"`
	}
}

type AddListingInput struct {
	Body ListingBody
}

type UpdateListingInput struct {
	Code string `path:"code" doc:"Listing code"`
	Body ListingBody
}

type DeleteListingInput struct {
	Code string `path:"code" doc:"Listing code"`
}

type MessageOutput struct {
	Body messageBody
}

// --- Handler ---

type ListingHandler struct {
	store    storage.ListingStore
	notifier *trigger.Notifier
	logger   *slog.Logger
}

func NewListingHandler(store storage.ListingStore, notifier *trigger.Notifier, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{store: store, notifier: notifier, logger: logger}
}

func registerListingRoutes(api huma.API, h *ListingHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-listings",
		Method:      http.MethodGet,
		Path:        "/api/sheets",
		Summary:     "List listings, optionally filtered",
		Tags:        []string{"listings"},
	}, h.ListListings)

	huma.Register(api, huma.Operation{
		OperationID:   "add-listing",
		Method:        http.MethodPost,
		Path:          "/api/sheets",
		Summary:       "Append a listing",
		Tags:          []string{"listings"},
		DefaultStatus: http.StatusCreated,
	}, h.AddListing)

	huma.Register(api, huma.Operation{
		OperationID: "get-listing",
		Method:      http.MethodGet,
		Path:        "/api/sheets/{code}",
		Summary:     "Get a listing by code",
		Tags:        []string{"listings"},
	}, h.GetListing)

	huma.Register(api, huma.Operation{
		OperationID: "update-listing",
		Method:      http.MethodPut,
		Path:        "/api/sheets/{code}",
		Summary:     "Overwrite a listing",
		Tags:        []string{"listings"},
	}, h.UpdateListing)

	huma.Register(api, huma.Operation{
		OperationID: "delete-listing",
		Method:      http.MethodDelete,
		Path:        "/api/sheets/{code}",
		Summary:     "Delete a listing",
		Tags:        []string{"listings"},
	}, h.DeleteListing)
}

func (h *ListingHandler) ListListings(ctx context.Context, input *ListListingsInput) (*ListListingsOutput, error) {
	f := listing.Filter{
		Location:  input.Location,
		Available: input.Available,
		Beds:      input.Beds,
		MinPrice:  input.MinPrice,
		MaxPrice:  input.MaxPrice,
	}

	var (
		records []listing.Record
		err     error
	)
	if f.IsZero() {
		records, err = h.store.ListAll(ctx)
	} else {
		records, err = h.store.Search(ctx, f)
	}
	if err != nil {
		return nil, h.storeError(err, "Failed to fetch properties")
	}

	out := &ListListingsOutput{}
	out.Body.Success = true
	out.Body.Data = make([]ListingBody, len(records))
	for i, r := range records {
		out.Body.Data[i] = fromRecord(r)
	}
	return out, nil
}

func (h *ListingHandler) GetListing(ctx context.Context, input *GetListingInput) (*GetListingOutput, error) {
	res := h.store.GetByCode(ctx, input.Code)
	rec, ok := res.Get()
	if !ok {
		return nil, h.storeError(res.Err(), "Failed to fetch property")
	}

	out := &GetListingOutput{}
	out.Body.Success = true
	out.Body.Data = fromRecord(rec)
	return out, nil
}

func (h *ListingHandler) AddListing(ctx context.Context, input *AddListingInput) (*MessageOutput, error) {
	r := toRecord(input.Body)
	if r.Code == "" {
		return nil, fail(http.StatusBadRequest, "Code is required")
	}

	if res := h.store.Add(ctx, r); !res.OK() {
		return nil, h.storeError(res.Err(), "Failed to add property")
	}

	h.logger.Info("listing added", "code", r.Code)
	h.notifier.Notify(trigger.ChangeEvent{Topic: trigger.TopicProperties, Action: trigger.ActionCreated, Key: r.Code})
	return &MessageOutput{Body: succeeded("Property added successfully")}, nil
}

// UpdateListing writes the body over the row addressed by the path code. A
// body without a code keeps the path code.
func (h *ListingHandler) UpdateListing(ctx context.Context, input *UpdateListingInput) (*MessageOutput, error) {
	r := toRecord(input.Body)
	if r.Code == "" {
		r.Code = input.Code
	}

	if res := h.store.Update(ctx, input.Code, r); !res.OK() {
		return nil, h.storeError(res.Err(), "Failed to update property")
	}

	h.logger.Info("listing updated", "code", input.Code)
	h.notifier.Notify(trigger.ChangeEvent{Topic: trigger.TopicProperties, Action: trigger.ActionUpdated, Key: input.Code})
	return &MessageOutput{Body: succeeded("Property updated successfully")}, nil
}

func (h *ListingHandler) DeleteListing(ctx context.Context, input *DeleteListingInput) (*MessageOutput, error) {
	if res := h.store.Delete(ctx, input.Code); !res.OK() {
		return nil, h.storeError(res.Err(), "Failed to delete property")
	}

	h.logger.Info("listing deleted", "code", input.Code)
	h.notifier.Notify(trigger.ChangeEvent{Topic: trigger.TopicProperties, Action: trigger.ActionDeleted, Key: input.Code})
	return &MessageOutput{Body: succeeded("Property deleted successfully")}, nil
}

// storeError maps a store failure to the envelope. Remote failures are
// logged by the store itself.
func (h *ListingHandler) storeError(err error, failure string) error {
	switch {
	case errors.Is(err, storage.ErrListingNotFound):
		return fail(http.StatusNotFound, "Property not found")
	case errors.Is(err, storage.ErrCodeRequired):
		return fail(http.StatusBadRequest, "Code is required")
	case !storage.IsRemote(err):
		h.logger.Error("listing store failed", "error", err)
	}
	return fail(http.StatusInternalServerError, failure)
}

// toRecord stores image URLs as the JSON array cells the sheet expects.
func toRecord(b ListingBody) listing.Record {
	r := listing.Record{
		Code:             b.Code,
		Available:        b.Available,
		Location:         b.Location,
		Date:             b.Date,
		Month:            b.Month.Measure,
		Price:            b.Price,
		Beds:             b.Beds.Measure,
		Baths:            b.Baths.Measure,
		Utilities:        b.Utilities,
		Mts:              b.Mts.Measure,
		Street:           b.Street,
		Number:           b.Number,
		Agency:           b.Agency,
		ID:               b.ID,
		Brochure:         b.Brochure,
		Video:            b.Video,
		WhatsappMessage:  b.WhatsappMessage,
		Paulina:          b.Paulina,
		Alessandra:       b.Alessandra,
		Laura:            b.Laura,
		Notes:            b.Notes,
	}
	r.SetImageURLs(b.Images)
	r.SetAdditionalImageURLs(b.AdditionalImages)
	return r
}

func fromRecord(r listing.Record) ListingBody {
	return ListingBody{
		Code:             r.Code,
		Available:        r.Available,
		Location:         r.Location,
		Date:             r.Date,
		Month:            MeasureField{r.Month},
		Price:            r.Price,
		Beds:             MeasureField{r.Beds},
		Baths:            MeasureField{r.Baths},
		Utilities:        r.Utilities,
		Mts:              MeasureField{r.Mts},
		Street:           r.Street,
		Number:           r.Number,
		Agency:           r.Agency,
		ID:               r.ID,
		Brochure:         r.Brochure,
		Video:            r.Video,
		WhatsappMessage:  r.WhatsappMessage,
		Paulina:          r.Paulina,
		Alessandra:       r.Alessandra,
		Laura:            r.Laura,
		Images:           r.ImageURLs(),
		AdditionalImages: r.AdditionalImageURLs(),
		Notes:            r.Notes,
	}
}
