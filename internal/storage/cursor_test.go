package storage

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCursor_EncodeDecode(t *testing.T) {
	c := Cursor{
		CreatedAt: time.Date(2026, 2, 15, 10, 30, 0, 123456000, time.UTC),
		ID:        uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
	}

	encoded, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := DecodeCursor(encoded)
	if err != nil {
		t.Fatalf("DecodeCursor failed: %v", err)
	}
	if !decoded.CreatedAt.Equal(c.CreatedAt) {
		t.Errorf("CreatedAt: got %v, want %v", decoded.CreatedAt, c.CreatedAt)
	}
	if decoded.ID != c.ID {
		t.Errorf("ID: got %v, want %v", decoded.ID, c.ID)
	}
}

func TestDecodeCursor_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"not json", base64.RawURLEncoding.EncodeToString([]byte("hello"))},
		{"empty object", base64.RawURLEncoding.EncodeToString([]byte("{}"))},
		{"missing id", base64.RawURLEncoding.EncodeToString([]byte(`{"created_at":"2026-01-01T00:00:00Z"}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCursor(tt.input); err == nil {
				t.Error("expected error")
			}
		})
	}
}
