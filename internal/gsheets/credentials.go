package gsheets

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// ErrNoCredentials is returned when neither the encoded variable nor, in
// development, the credentials file is available.
var ErrNoCredentials = errors.New("no google credentials: set GOOGLE_CREDENTIALS_BASE64")

// CredentialSource says where service-account credentials come from.
type CredentialSource struct {
	// Base64 is the base64-encoded service-account JSON.
	Base64 string
	// File is read only when Development is set and Base64 is empty.
	File        string
	Development bool
}

// ResolveCredentials returns the service-account JSON for src.
func ResolveCredentials(src CredentialSource) ([]byte, error) {
	if encoded := strings.TrimSpace(src.Base64); encoded != "" {
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode GOOGLE_CREDENTIALS_BASE64: %w", err)
		}
		return data, nil
	}

	if !src.Development || src.File == "" {
		return nil, ErrNoCredentials
	}

	data, err := os.ReadFile(src.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w (and %s not found)", ErrNoCredentials, src.File)
		}
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return data, nil
}

// ParseCredentials validates service-account JSON and scopes it to
// spreadsheet read/write.
func ParseCredentials(ctx context.Context, data []byte) (*google.Credentials, error) {
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}
	return creds, nil
}
