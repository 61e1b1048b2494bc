package memoizer

import (
	"context"
	"sync/atomic"
)

// State is an outcome of a computation.
type State int32

// Computation states.
const (
	Pending State = iota
	Succeeded
	Failed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}

	return "unknown"
}

// Result is a shared handle of a computation that settles exactly once.
//
// All callers sharing an entry receive the same *Result and observe the same value or error.
type Result[V any] struct {
	done  chan struct{}
	state atomic.Int32
	val   V
	err   error
}

func newResult[V any]() *Result[V] {
	return &Result[V]{done: make(chan struct{})}
}

func settledResult[V any](val V, err error) *Result[V] {
	r := newResult[V]()
	r.settle(val, err)

	return r
}

// settle must be called once.
func (r *Result[V]) settle(val V, err error) {
	if err != nil {
		r.err = err
		r.state.Store(int32(Failed))
	} else {
		r.val = val
		r.state.Store(int32(Succeeded))
	}

	close(r.done)
}

// Done returns a channel that is closed when result is settled.
func (r *Result[V]) Done() <-chan struct{} {
	return r.done
}

// State returns current state of computation.
func (r *Result[V]) State() State {
	return State(r.state.Load())
}

// Value returns settled value without blocking, ok is false unless computation succeeded.
func (r *Result[V]) Value() (val V, ok bool) {
	if r.State() != Succeeded {
		return val, false
	}

	return r.val, true
}

// Err returns failure of settled computation, nil while pending or succeeded.
func (r *Result[V]) Err() error {
	if r.State() != Failed {
		return nil
	}

	return r.err
}

// Wait blocks until result is settled or ctx is done.
//
// Done ctx only stops waiting, computation itself continues and its result stays shared.
func (r *Result[V]) Wait(ctx context.Context) (V, error) {
	select {
	case <-r.done:
		return r.val, r.err
	default:
	}

	select {
	case <-r.done:
		return r.val, r.err
	case <-ctx.Done():
		var zero V

		return zero, ctx.Err()
	}
}
