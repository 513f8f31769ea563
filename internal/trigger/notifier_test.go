package trigger

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func rpcOKServer(t *testing.T, received *atomic.Int32, got *ChangeEvent, mu *sync.Mutex) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		var req struct {
			JSONRPC string      `json:"jsonrpc"`
			Method  string      `json:"method"`
			Params  ChangeEvent `json:"params"`
			ID      int64       `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if got != nil {
			mu.Lock()
			*got = req.Params
			mu.Unlock()
		}
		resp := JSONRPCResponse{JSONRPC: "2.0", Result: json.RawMessage(`"ok"`), ID: req.ID}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func waitNotifier(t *testing.T, n *Notifier) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := n.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestNotifier_DispatchesToTopicSubscribers(t *testing.T) {
	var received atomic.Int32
	var mu sync.Mutex
	var got ChangeEvent
	srv := rpcOKServer(t, &received, &got, &mu)

	registry := NewSubscriberRegistry()
	ctx := context.Background()
	registry.Register(ctx, &Subscriber{Name: "a", Endpoint: srv.URL, Topics: []string{TopicProperties}})
	registry.Register(ctx, &Subscriber{Name: "b", Endpoint: srv.URL})

	notifier := NewNotifier(registry, NewRPCClient(0, time.Millisecond, 5*time.Second), slog.New(slog.DiscardHandler))
	notifier.Notify(ChangeEvent{Topic: TopicProperties, Action: ActionCreated, Key: "SS-1"})
	waitNotifier(t, notifier)

	if received.Load() != 2 {
		t.Errorf("received: got %d, want 2", received.Load())
	}
	mu.Lock()
	defer mu.Unlock()
	if got.Key != "SS-1" || got.Action != ActionCreated {
		t.Errorf("event: got %+v", got)
	}
	if got.At.IsZero() {
		t.Error("expected At to be stamped")
	}
}

func TestNotifier_SkipsOtherTopics(t *testing.T) {
	var received atomic.Int32
	srv := rpcOKServer(t, &received, nil, nil)

	registry := NewSubscriberRegistry()
	registry.Register(context.Background(), &Subscriber{Name: "locs", Endpoint: srv.URL, Topics: []string{TopicLocations}})

	notifier := NewNotifier(registry, NewRPCClient(0, time.Millisecond, 5*time.Second), slog.New(slog.DiscardHandler))
	notifier.Notify(ChangeEvent{Topic: TopicProperties, Action: ActionDeleted, Key: "SS-1"})
	waitNotifier(t, notifier)

	if received.Load() != 0 {
		t.Errorf("received: got %d, want 0", received.Load())
	}
}

func TestNotifier_LogsRPCErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var mu sync.Mutex
	var logged bool
	handler := slog.NewTextHandler(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		logged = true
		return len(p), nil
	}), nil)

	registry := NewSubscriberRegistry()
	registry.Register(context.Background(), &Subscriber{Name: "failing", Endpoint: srv.URL})

	notifier := NewNotifier(registry, NewRPCClient(0, time.Millisecond, 5*time.Second), slog.New(handler))
	notifier.Notify(ChangeEvent{Topic: TopicLocations, Action: ActionCreated, Key: "x"})
	waitNotifier(t, notifier)

	mu.Lock()
	defer mu.Unlock()
	if !logged {
		t.Error("expected error to be logged")
	}
}

func TestNotifier_NoSubscribers(t *testing.T) {
	notifier := NewNotifier(NewSubscriberRegistry(), NewRPCClient(0, time.Millisecond, 5*time.Second), slog.New(slog.DiscardHandler))
	notifier.Notify(ChangeEvent{Topic: TopicProperties, Action: ActionUpdated, Key: "x"})
	waitNotifier(t, notifier)
}

func TestNotifier_NilIsNoop(t *testing.T) {
	var n *Notifier
	n.Notify(ChangeEvent{Topic: TopicProperties})
	if err := n.Wait(context.Background()); err != nil {
		t.Errorf("Wait: %v", err)
	}
}

// writerFunc adapts a function to the io.Writer interface.
type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) {
	return f(p)
}
