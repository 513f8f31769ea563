package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/Botopia-SAS/DashboardSafestays/internal/trigger"
)

func setupSubscriberServer() http.Handler {
	return NewServer(testLogger(), Dependencies{
		Listings:    &mockListingStore{},
		Subscribers: trigger.NewSubscriberRegistry(),
	})
}

func postSubscriber(t *testing.T, server http.Handler, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/v1/subscribers", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestRegisterSubscriber_Success(t *testing.T) {
	server := setupSubscriberServer()

	w := postSubscriber(t, server, map[string]any{
		"name":     "frontend",
		"endpoint": "http://localhost:9000/rpc",
		"topics":   []string{"properties"},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d\nbody: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp SubscriberResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Name != "frontend" {
		t.Errorf("Name: got %q", resp.Name)
	}
	if resp.Status != "active" {
		t.Errorf("Status: got %q", resp.Status)
	}
	if resp.ID == uuid.Nil {
		t.Error("expected non-nil ID")
	}
}

func TestRegisterSubscriber_DefaultsToAllTopics(t *testing.T) {
	w := postSubscriber(t, setupSubscriberServer(), map[string]any{
		"name":     "all",
		"endpoint": "https://hooks.example.com/rpc",
	})

	var resp SubscriberResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Topics) != len(trigger.Topics) {
		t.Errorf("topics: got %v, want %v", resp.Topics, trigger.Topics)
	}
}

func TestRegisterSubscriber_MissingName(t *testing.T) {
	w := postSubscriber(t, setupSubscriberServer(), map[string]any{
		"endpoint": "http://localhost:9000/rpc",
	})

	if w.Code < 400 || w.Code >= 500 {
		t.Errorf("status: got %d, want 4xx\nbody: %s", w.Code, w.Body.String())
	}
}

func TestRegisterSubscriber_InvalidEndpoint(t *testing.T) {
	w := postSubscriber(t, setupSubscriberServer(), map[string]any{
		"name":     "bad",
		"endpoint": "localhost:9000",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRegisterSubscriber_UnknownTopic(t *testing.T) {
	w := postSubscriber(t, setupSubscriberServer(), map[string]any{
		"name":     "x",
		"endpoint": "http://localhost:9000/rpc",
		"topics":   []string{"cells"},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestListSubscribers(t *testing.T) {
	server := setupSubscriberServer()
	postSubscriber(t, server, map[string]any{"name": "a", "endpoint": "http://a/rpc"})
	postSubscriber(t, server, map[string]any{"name": "b", "endpoint": "http://b/rpc"})

	req := httptest.NewRequest(http.MethodGet, "/v1/subscribers", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var resp []SubscriberResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp) != 2 {
		t.Errorf("subscribers: got %d, want 2", len(resp))
	}
}

func TestGetSubscriber_NotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/subscribers/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	setupSubscriberServer().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteSubscriber(t *testing.T) {
	server := setupSubscriberServer()
	w := postSubscriber(t, server, map[string]any{"name": "a", "endpoint": "http://a/rpc"})
	var created SubscriberResponse
	json.NewDecoder(w.Body).Decode(&created)

	req := httptest.NewRequest(http.MethodDelete, "/v1/subscribers/"+created.ID.String(), nil)
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusNoContent)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/subscribers/"+created.ID.String(), nil)
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want %d", w.Code, http.StatusNotFound)
	}
}
