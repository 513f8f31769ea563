package trigger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubscriberStore persists subscribers across restarts.
type SubscriberStore interface {
	SaveSubscriber(ctx context.Context, s *Subscriber) error
	DeleteSubscriber(ctx context.Context, id uuid.UUID) error
	ListSubscribers(ctx context.Context) ([]*Subscriber, error)
}

// PostgresSubscriberStore implements SubscriberStore over the subscribers
// table created by storage.RunMigrations.
type PostgresSubscriberStore struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPostgresSubscriberStore creates a store over pool. queryTimeout sets
// the per-query deadline; zero means none.
func NewPostgresSubscriberStore(pool *pgxpool.Pool, queryTimeout time.Duration) *PostgresSubscriberStore {
	return &PostgresSubscriberStore{pool: pool, queryTimeout: queryTimeout}
}

func (s *PostgresSubscriberStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout > 0 {
		return context.WithTimeout(ctx, s.queryTimeout)
	}
	return ctx, func() {}
}

func (s *PostgresSubscriberStore) SaveSubscriber(ctx context.Context, sub *Subscriber) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO subscribers (id, name, endpoint, topics, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sub.ID, sub.Name, sub.Endpoint, sub.Topics, string(sub.Status), sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("save subscriber: %w", err)
	}
	return nil
}

func (s *PostgresSubscriberStore) DeleteSubscriber(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tag, err := s.pool.Exec(ctx, `DELETE FROM subscribers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSubscriberNotFound
	}
	return nil
}

func (s *PostgresSubscriberStore) ListSubscribers(ctx context.Context) ([]*Subscriber, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, endpoint, topics, status, created_at
		FROM subscribers
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []*Subscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func scanSubscriber(row pgx.Row) (*Subscriber, error) {
	var sub Subscriber
	var status string
	if err := row.Scan(&sub.ID, &sub.Name, &sub.Endpoint, &sub.Topics, &status, &sub.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan subscriber: %w", err)
	}
	sub.Status = SubscriberStatus(status)
	return &sub, nil
}
