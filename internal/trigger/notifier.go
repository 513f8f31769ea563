package trigger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Botopia-SAS/DashboardSafestays/internal/metrics"
)

// Notifier dispatches change events to subscribers via JSON-RPC.
type Notifier struct {
	registry  *SubscriberRegistry
	rpcClient *RPCClient
	logger    *slog.Logger
	wg        sync.WaitGroup
}

func NewNotifier(registry *SubscriberRegistry, rpcClient *RPCClient, logger *slog.Logger) *Notifier {
	return &Notifier{
		registry:  registry,
		rpcClient: rpcClient,
		logger:    logger,
	}
}

// Notify fires a goroutine per subscriber of ev.Topic. Errors are logged and
// counted, never returned to the caller.
func (n *Notifier) Notify(ev ChangeEvent) {
	if n == nil {
		return
	}
	subs := n.registry.ForTopic(ev.Topic)
	if len(subs) == 0 {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	for _, s := range subs {
		n.wg.Add(1)
		go func(endpoint, name string) {
			defer n.wg.Done()
			err := n.deliver(endpoint, ev)
			metrics.ObserveNotification(ev.Topic, err)
			if err != nil {
				n.logger.Error("change notification failed",
					"subscriber", name, "endpoint", endpoint,
					"topic", ev.Topic, "action", ev.Action, "key", ev.Key, "error", err)
			}
		}(s.Endpoint, s.Name)
	}
}

func (n *Notifier) deliver(endpoint string, ev ChangeEvent) error {
	resp, err := n.rpcClient.Call(context.Background(), endpoint, MethodListingChanged, ev)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	return nil
}

// Wait blocks until in-flight deliveries finish or ctx is done.
func (n *Notifier) Wait(ctx context.Context) error {
	if n == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
