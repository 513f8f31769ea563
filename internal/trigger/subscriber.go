package trigger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Topics a subscriber can follow.
const (
	TopicProperties = "properties"
	TopicLocations  = "locations"
)

// Topics lists every topic in publication order.
var Topics = []string{TopicProperties, TopicLocations}

var ErrSubscriberNotFound = errors.New("subscriber not found")

// SubscriberStatus represents the activation state of a subscriber.
type SubscriberStatus string

const (
	SubscriberStatusActive   SubscriberStatus = "active"
	SubscriberStatusInactive SubscriberStatus = "inactive"
)

// Subscriber is an external JSON-RPC endpoint that receives change events.
type Subscriber struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Endpoint  string           `json:"endpoint"`
	Topics    []string         `json:"topics"`
	Status    SubscriberStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// SubscriberRegistry is a thread-safe in-memory view of subscribers, written
// through to an optional SubscriberStore.
type SubscriberRegistry struct {
	mu    sync.RWMutex
	subs  map[uuid.UUID]*Subscriber
	store SubscriberStore
}

// NewSubscriberRegistry creates an empty registry. A nil or omitted store
// keeps subscribers in memory only.
func NewSubscriberRegistry(store ...SubscriberStore) *SubscriberRegistry {
	r := &SubscriberRegistry{subs: make(map[uuid.UUID]*Subscriber)}
	if len(store) > 0 && store[0] != nil {
		r.store = store[0]
	}
	return r
}

// LoadAll replaces the in-memory view with the store's contents.
func (r *SubscriberRegistry) LoadAll(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	subs, err := r.store.ListSubscribers(ctx)
	if err != nil {
		return fmt.Errorf("load subscribers: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = make(map[uuid.UUID]*Subscriber, len(subs))
	for _, s := range subs {
		r.subs[s.ID] = s
	}
	return nil
}

// Register adds s to the registry, assigning an ID and creation time. An
// empty topic list subscribes to every topic.
func (r *SubscriberRegistry) Register(ctx context.Context, s *Subscriber) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now().UTC()
	if s.Status == "" {
		s.Status = SubscriberStatusActive
	}
	if len(s.Topics) == 0 {
		s.Topics = slices.Clone(Topics)
	}

	if r.store != nil {
		if err := r.store.SaveSubscriber(ctx, s); err != nil {
			return err
		}
	}

	r.mu.Lock()
	r.subs[s.ID] = s
	r.mu.Unlock()
	return nil
}

func (r *SubscriberRegistry) Get(id uuid.UUID) (*Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.subs[id]
	if !ok {
		return nil, ErrSubscriberNotFound
	}
	return s, nil
}

// List returns all subscribers, oldest first.
func (r *SubscriberRegistry) List() []*Subscriber {
	r.mu.RLock()
	out := make([]*Subscriber, 0, len(r.subs))
	for _, s := range r.subs {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *SubscriberRegistry) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[id]; !ok {
		return ErrSubscriberNotFound
	}
	if r.store != nil {
		if err := r.store.DeleteSubscriber(ctx, id); err != nil && !errors.Is(err, ErrSubscriberNotFound) {
			return err
		}
	}
	delete(r.subs, id)
	return nil
}

// ForTopic returns the active subscribers following topic.
func (r *SubscriberRegistry) ForTopic(topic string) []*Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Subscriber
	for _, s := range r.subs {
		if s.Status != SubscriberStatusActive {
			continue
		}
		if slices.Contains(s.Topics, topic) {
			out = append(out, s)
		}
	}
	return out
}

// ValidTopic reports whether topic is one the service publishes.
func ValidTopic(topic string) bool {
	return slices.Contains(Topics, topic)
}

// HasEndpoint reports whether any subscriber posts to endpoint.
func (r *SubscriberRegistry) HasEndpoint(endpoint string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.subs {
		if s.Endpoint == endpoint {
			return true
		}
	}
	return false
}
