package gsheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// valueInputOption makes the Sheets UI parse written cells as if typed, so
// prices and dates keep the sheet's formatting rules.
const valueInputOption = "USER_ENTERED"

// Client talks to one spreadsheet through the Sheets v4 API.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	timeout       time.Duration
}

// New creates a Client for spreadsheetID. opts are passed to the Sheets
// service, typically option.WithCredentials.
func New(ctx context.Context, spreadsheetID string, timeout time.Duration, opts ...option.ClientOption) (*Client, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, timeout: timeout}, nil
}

// NewWithCredentials resolves credentials from src and creates a Client.
func NewWithCredentials(ctx context.Context, spreadsheetID string, timeout time.Duration, src CredentialSource) (*Client, error) {
	data, err := ResolveCredentials(src)
	if err != nil {
		return nil, err
	}
	creds, err := ParseCredentials(ctx, data)
	if err != nil {
		return nil, err
	}
	return New(ctx, spreadsheetID, timeout, option.WithCredentials(creds))
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}

// Read returns the formatted cell values of rng.
func (c *Client) Read(ctx context.Context, rng string) ([][]string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rng, err)
	}
	return stringRows(resp.Values), nil
}

func (c *Client) Append(ctx context.Context, rng string, row []string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	vr := &sheets.ValueRange{Values: [][]interface{}{cells(row)}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %s: %w", rng, err)
	}
	return nil
}

func (c *Client) Update(ctx context.Context, rng string, row []string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	vr := &sheets.ValueRange{Values: [][]interface{}{cells(row)}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (c *Client) DeleteRows(ctx context.Context, sheetID, start, end int64) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{deleteRowsRequest(sheetID, start, end)},
	}
	_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("delete rows %d-%d: %w", start, end, err)
	}
	return nil
}

func deleteRowsRequest(sheetID, start, end int64) *sheets.Request {
	return &sheets.Request{
		DeleteDimension: &sheets.DeleteDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "ROWS",
				StartIndex: start,
				EndIndex:   end,
				// SheetId 0 and StartIndex 0 are valid values the API must see.
				ForceSendFields: []string{"SheetId", "StartIndex"},
			},
		},
	}
}

func cells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}

// stringRows renders API cell values as strings. Formatted reads return
// strings already; anything else is printed.
func stringRows(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, vs := range values {
		row := make([]string, len(vs))
		for j, v := range vs {
			switch t := v.(type) {
			case string:
				row[j] = t
			case nil:
				row[j] = ""
			default:
				row[j] = fmt.Sprint(t)
			}
		}
		rows[i] = row
	}
	return rows
}
