package storage

import (
	"errors"
	"fmt"
)

// Kind classifies the outcome of a listing store operation.
type Kind int

const (
	KindOK Kind = iota
	KindNotFound
	KindInvalid
	KindRemoteError
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	case KindRemoteError:
		return "remote_error"
	default:
		return "unknown"
	}
}

// Result is the outcome of a listing store operation. Callers that only
// need a success flag use OK; callers that care why use Kind or Err.
type Result[T any] struct {
	Kind  Kind
	Value T
	Cause error
}

func okResult[T any](v T) Result[T] {
	return Result[T]{Kind: KindOK, Value: v}
}

func notFoundResult[T any]() Result[T] {
	return Result[T]{Kind: KindNotFound, Cause: ErrListingNotFound}
}

func invalidResult[T any](err error) Result[T] {
	return Result[T]{Kind: KindInvalid, Cause: err}
}

func remoteResult[T any](err error) Result[T] {
	return Result[T]{Kind: KindRemoteError, Cause: err}
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool { return r.Kind == KindOK }

// Get returns the value and whether the operation succeeded.
func (r Result[T]) Get() (T, bool) { return r.Value, r.Kind == KindOK }

// Err returns nil on success, ErrListingNotFound when nothing matched, and
// the underlying cause otherwise.
func (r Result[T]) Err() error {
	if r.Kind == KindOK {
		return nil
	}
	return r.Cause
}

// RemoteError is a failed call to the spreadsheet API.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("sheets %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsRemote reports whether err came from the spreadsheet API.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
