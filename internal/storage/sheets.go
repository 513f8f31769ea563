package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Botopia-SAS/DashboardSafestays/internal/circuitbreaker"
	"github.com/Botopia-SAS/DashboardSafestays/internal/listing"
	"github.com/Botopia-SAS/DashboardSafestays/internal/metrics"
)

// SheetsClient is the subset of the Sheets API the listing store needs.
// Ranges are A1 notation.
type SheetsClient interface {
	// Read returns the rows of rng. Trailing empty cells may be omitted.
	Read(ctx context.Context, rng string) ([][]string, error)

	// Append adds row after the last row of rng.
	Append(ctx context.Context, rng string, row []string) error

	// Update overwrites the cells of rng with row.
	Update(ctx context.Context, rng string, row []string) error

	// DeleteRows removes rows [start, end) (0-based) from the sheet with
	// the given numeric id, shifting later rows up.
	DeleteRows(ctx context.Context, sheetID, start, end int64) error
}

const (
	firstColumn = "A"
	lastColumn  = "X"
)

// SheetsConfig addresses the properties tab.
type SheetsConfig struct {
	// SheetName is the tab title used in A1 ranges.
	SheetName string
	// SheetID is the numeric tab id used by structural edits.
	SheetID int64
}

// SheetsStore implements ListingStore on top of a spreadsheet tab whose
// first row is a header. The remote API only addresses rows by position,
// so update and delete scan for the code first and then write by index.
//
// Mutations from this process are serialized so that one caller's scan
// cannot be invalidated by another caller's write. Edits made directly in
// the spreadsheet between a scan and the write can still shift rows.
type SheetsStore struct {
	client  SheetsClient
	sheet   string
	sheetID int64
	breaker *circuitbreaker.Breaker
	logger  *slog.Logger

	mu sync.Mutex
}

// NewSheetsStore creates a store over client. breaker may be nil.
func NewSheetsStore(client SheetsClient, cfg SheetsConfig, breaker *circuitbreaker.Breaker, logger *slog.Logger) *SheetsStore {
	return &SheetsStore{
		client:  client,
		sheet:   cfg.SheetName,
		sheetID: cfg.SheetID,
		breaker: breaker,
		logger:  logger,
	}
}

func (s *SheetsStore) ListAll(ctx context.Context) ([]listing.Record, error) {
	rows, err := s.readAll(ctx)
	if err != nil {
		s.logger.Error("failed to read listings", "sheet", s.sheet, "error", err)
		return nil, err
	}

	if len(rows) <= 1 {
		return []listing.Record{}, nil
	}

	records := make([]listing.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, listing.Decode(row))
	}
	return records, nil
}

func (s *SheetsStore) Search(ctx context.Context, f listing.Filter) ([]listing.Record, error) {
	records, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(records), nil
}

func (s *SheetsStore) GetByCode(ctx context.Context, code string) Result[listing.Record] {
	records, err := s.ListAll(ctx)
	if err != nil {
		return remoteResult[listing.Record](err)
	}
	for _, r := range records {
		if r.Code == code {
			return okResult(r)
		}
	}
	return notFoundResult[listing.Record]()
}

func (s *SheetsStore) Add(ctx context.Context, r listing.Record) Result[struct{}] {
	if r.Code == "" {
		return invalidResult[struct{}](ErrCodeRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := listing.Encode(r)
	err := s.call("append", func() error {
		return s.client.Append(ctx, s.a1(firstColumn, lastColumn), row)
	})
	if err != nil {
		s.logger.Error("failed to add listing", "code", r.Code, "error", err)
		return remoteResult[struct{}](err)
	}
	return okResult(struct{}{})
}

func (s *SheetsStore) Update(ctx context.Context, code string, r listing.Record) Result[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.findRow(ctx, code)
	if err != nil {
		s.logger.Error("failed to locate listing for update", "code", code, "error", err)
		return remoteResult[struct{}](err)
	}
	if idx < 0 {
		return notFoundResult[struct{}]()
	}

	n := idx + 1
	rng := s.a1(fmt.Sprintf("%s%d", firstColumn, n), fmt.Sprintf("%s%d", lastColumn, n))
	row := listing.Encode(r)
	err = s.call("update", func() error {
		return s.client.Update(ctx, rng, row)
	})
	if err != nil {
		s.logger.Error("failed to update listing", "code", code, "row", n, "error", err)
		return remoteResult[struct{}](err)
	}
	return okResult(struct{}{})
}

func (s *SheetsStore) Delete(ctx context.Context, code string) Result[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.findRow(ctx, code)
	if err != nil {
		s.logger.Error("failed to locate listing for delete", "code", code, "error", err)
		return remoteResult[struct{}](err)
	}
	if idx < 0 {
		return notFoundResult[struct{}]()
	}

	start := int64(idx)
	err = s.call("delete", func() error {
		return s.client.DeleteRows(ctx, s.sheetID, start, start+1)
	})
	if err != nil {
		s.logger.Error("failed to delete listing", "code", code, "row", idx+1, "error", err)
		return remoteResult[struct{}](err)
	}
	return okResult(struct{}{})
}

// Ping reads the header row.
func (s *SheetsStore) Ping(ctx context.Context) error {
	return s.call("ping", func() error {
		_, err := s.client.Read(ctx, s.a1(firstColumn+"1", lastColumn+"1"))
		return err
	})
}

func (s *SheetsStore) readAll(ctx context.Context) ([][]string, error) {
	var rows [][]string
	err := s.call("read", func() error {
		var err error
		rows, err = s.client.Read(ctx, s.a1(firstColumn, lastColumn))
		return err
	})
	return rows, err
}

// findRow returns the 0-based index, header included, of the first data row
// whose first cell equals code, or -1.
func (s *SheetsStore) findRow(ctx context.Context, code string) (int, error) {
	rows, err := s.readAll(ctx)
	if err != nil {
		return -1, err
	}
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) > 0 && rows[i][0] == code {
			return i, nil
		}
	}
	return -1, nil
}

// call runs fn through the breaker and records it. Failures are wrapped in
// *RemoteError.
func (s *SheetsStore) call(op string, fn func() error) error {
	start := time.Now()
	var err error
	if s.breaker != nil {
		err = s.breaker.Execute(fn)
	} else {
		err = fn()
	}
	metrics.ObserveRemoteCall(op, err, errors.Is(err, circuitbreaker.ErrCircuitOpen), time.Since(start))
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	return nil
}

// a1 builds a range on the configured tab, quoting the tab name when it
// contains anything other than letters, digits and underscores.
func (s *SheetsStore) a1(from, to string) string {
	return quoteSheetName(s.sheet) + "!" + from + ":" + to
}

func quoteSheetName(name string) string {
	plain := name != ""
	for _, r := range name {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
