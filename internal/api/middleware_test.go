package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// serveWithID runs a request carrying incoming as X-Request-ID through
// RequestID and returns the response header and the id seen downstream.
func serveWithID(t *testing.T, incoming string) (header, seen string) {
	t.Helper()
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/sheets", nil)
	if incoming != "" {
		req.Header.Set("X-Request-ID", incoming)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w.Header().Get("X-Request-ID"), seen
}

func TestRequestID_IncomingHeader(t *testing.T) {
	atLimit := strings.Repeat("a", 128)
	overLimit := strings.Repeat("b", 129)

	tests := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{"absent", "", false},
		{"short", "upstream-123", true},
		{"exactly 128 chars", atLimit, true},
		{"129 chars", overLimit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, seen := serveWithID(t, tt.incoming)

			if header != seen {
				t.Errorf("header %q and context id %q differ", header, seen)
			}
			if tt.reused {
				if header != tt.incoming {
					t.Errorf("X-Request-ID: got %q, want the incoming id", header)
				}
				return
			}
			if _, err := uuid.Parse(header); err != nil {
				t.Errorf("X-Request-ID: got %q, want a generated uuid", header)
			}
		})
	}
}

func TestRequestID_GeneratesDistinctIDs(t *testing.T) {
	first, _ := serveWithID(t, "")
	second, _ := serveWithID(t, "")
	if first == second {
		t.Errorf("both requests got id %q", first)
	}
}

func TestRequestIDFrom_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := RequestIDFrom(req.Context()); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestLogging_RecordsRequestIDAndStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestID(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/sheets/NOPE", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v\n%s", err, buf.String())
	}
	if entry["request_id"] != "trace-42" {
		t.Errorf("request_id: got %v", entry["request_id"])
	}
	if entry["status"] != float64(http.StatusNotFound) {
		t.Errorf("status: got %v", entry["status"])
	}
	if entry["path"] != "/api/sheets/NOPE" {
		t.Errorf("path: got %v", entry["path"])
	}
}

func TestRecovery_WritesEnvelope(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestID(Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("sheet row out of range")
	})))

	req := httptest.NewRequest(http.MethodDelete, "/api/sheets/SS-1", nil)
	req.Header.Set("X-Request-ID", "trace-7")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusInternalServerError)
	}
	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Error != "internal server error" {
		t.Errorf("envelope: got %+v", env)
	}
	if w.Header().Get("X-Request-ID") != "trace-7" {
		t.Errorf("X-Request-ID: got %q", w.Header().Get("X-Request-ID"))
	}
	if !strings.Contains(buf.String(), `"request_id":"trace-7"`) {
		t.Errorf("panic log missing request id: %s", buf.String())
	}
}

func TestStatusWriter_Unwrap(t *testing.T) {
	inner := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: inner, status: http.StatusOK}

	sw.WriteHeader(http.StatusCreated)
	if sw.status != http.StatusCreated || inner.Code != http.StatusCreated {
		t.Errorf("status: got %d / inner %d", sw.status, inner.Code)
	}
	if sw.Unwrap() != inner {
		t.Error("Unwrap should return the wrapped writer")
	}
}
