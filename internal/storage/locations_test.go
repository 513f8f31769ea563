package storage

import (
	"strings"
	"testing"
)

func validInput() LocationInput {
	return LocationInput{
		ListingID:    "ID-1",
		Title:        "Sunny flat in Ruzafa",
		Price:        1200,
		Area:         70,
		Location:     "Valencia",
		ListingType:  ListingTypeRent,
		PropertyType: "Apartment",
		Bedrooms:     2,
		Bathrooms:    1,
	}
}

func TestLocationInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LocationInput)
		wantErr string
	}{
		{"valid", func(in *LocationInput) {}, ""},
		{"missing title", func(in *LocationInput) { in.Title = "  " }, "title is required"},
		{"bad listing type", func(in *LocationInput) { in.ListingType = "For Lease" }, "listing_type"},
		{"bad property type", func(in *LocationInput) { in.PropertyType = "Castle" }, "property_type"},
		{"negative price", func(in *LocationInput) { in.Price = -1 }, "must not be negative"},
		{"negative bedrooms", func(in *LocationInput) { in.Bedrooms = -1 }, "bedrooms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error: got %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLocationInput_ValidateReportsAll(t *testing.T) {
	err := LocationInput{}.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"title", "listing_type", "property_type"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err.Error(), want)
		}
	}
}
