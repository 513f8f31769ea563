package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	Closed   State = iota // Calls pass through.
	Open                  // Calls are rejected until the reset timeout elapses.
	HalfOpen              // A single probe call is in flight.
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned when the breaker rejects a call.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// StateChangeFunc is called with the breaker's name after each transition.
// It runs with the breaker's lock held and must not call back into it.
type StateChangeFunc func(name string, from, to State)

// Breaker guards calls to a remote dependency. Errors caused by the caller
// giving up (context cancellation) are not counted as failures.
type Breaker struct {
	name            string
	mu              sync.Mutex
	state           State
	failures        int
	maxFailures     int
	resetTimeout    time.Duration
	lastFailureTime time.Time
	onChange        StateChangeFunc
}

// New creates a Breaker that opens after maxFailures consecutive errors
// and lets a probe through after resetTimeout.
func New(name string, maxFailures int, resetTimeout time.Duration) *Breaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &Breaker{
		name:         name,
		state:        Closed,
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
	}
}

// OnStateChange registers fn to observe transitions.
func (b *Breaker) OnStateChange(fn StateChangeFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

func (b *Breaker) Name() string { return b.name }

// Execute runs fn through the breaker. While open, and while a half-open
// probe is running, ErrCircuitOpen is returned without calling fn.
func (b *Breaker) Execute(fn func() error) error {
	b.mu.Lock()
	switch b.state {
	case Open:
		if time.Since(b.lastFailureTime) <= b.resetTimeout {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		b.setState(HalfOpen)
	case HalfOpen:
		b.mu.Unlock()
		return ErrCircuitOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil && !isCallerAbort(err) {
		b.failures++
		b.lastFailureTime = time.Now()
		if b.state == HalfOpen || b.failures >= b.maxFailures {
			b.setState(Open)
		}
		return err
	}

	if err != nil {
		// Aborted probe: let the next caller try again.
		if b.state == HalfOpen {
			b.setState(Open)
		}
		return err
	}

	b.failures = 0
	b.setState(Closed)
	return nil
}

// State returns the current state of the breaker.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) setState(to State) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	if b.onChange != nil {
		b.onChange(b.name, from, to)
	}
}

func isCallerAbort(err error) bool {
	return errors.Is(err, context.Canceled)
}
