package memoizer

import (
	"context"
	"fmt"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// Func is a memoizable function.
//
// It is called in a separate goroutine with a context that is never canceled,
// but carries values of the caller context.
type Func[V any] func(ctx context.Context, args ...interface{}) (V, error)

// Memoizer caches results of Func by keys resolved from arguments and shares in-flight computations.
//
// Please use New to create instance.
type Memoizer[V any] struct {
	fn     Func[V]
	store  *store[V]
	config Config
	log    ctxd.Logger
	stat   stats.Tracker
	cnt    counters
}

// New creates a memoizer of fn.
//
// Options are applied on top of defaults: zero MaxAge, Unbounded MaxSize and JSONResolver.
func New[V any](fn Func[V], options ...Option) *Memoizer[V] {
	cfg := newConfig(options...)

	m := &Memoizer[V]{
		fn:     fn,
		config: cfg,
		log:    cfg.Logger,
		stat:   cfg.Stats,
		cnt:    newCounters(),
	}

	// Gauge is published in store critical section, so that concurrent updates are not reordered.
	m.store = newStore[V](func(items int) {
		m.stat.Set(context.Background(), MetricItems, float64(items), "name", m.config.Name)
	})

	return m
}

// Func returns memoized function with the signature of original function.
func (m *Memoizer[V]) Func() Func[V] {
	return m.Get
}

// Get calls memoized function and waits for the result.
func (m *Memoizer[V]) Get(ctx context.Context, args ...interface{}) (V, error) {
	return m.Call(ctx, args...).Wait(ctx)
}

// Call returns a result of valid cached entry or starts a new computation.
//
// Returned result may still be pending, it is shared with other calls having the same key.
func (m *Memoizer[V]) Call(ctx context.Context, args ...interface{}) *Result[V] {
	if m.config.MaxSize == 0 {
		return m.bypass(ctx, args)
	}

	key, err := m.config.Resolver(args)
	if err != nil {
		var zero V

		return settledResult(zero, ctxd.WrapError(ctx, fmt.Errorf("%w: %w", ErrKeyResolution, err),
			"memoizer call failed", "name", m.config.Name))
	}

	maxAge := m.config.MaxAge
	if ttl, ok := TTL(ctx); ok {
		maxAge = ttl
	}

	e, status, _ := m.store.acquire(key, m.config.Clock(), maxAge, SkipRead(ctx))

	switch status {
	case statusHit, statusShared:
		m.log.Debug(ctx, "cache hit", "name", m.config.Name, "key", key, "state", e.result.State().String())
		m.stat.Add(ctx, MetricHit, 1, "name", m.config.Name)
		m.cnt.hits.Inc()

		if status == statusShared {
			m.cnt.shared.Inc()
		}

		return e.result
	case statusExpired:
		m.log.Debug(ctx, "cache key expired", "name", m.config.Name, "key", key)
		m.stat.Add(ctx, MetricExpired, 1, "name", m.config.Name)
		m.cnt.expired.Inc()
	case statusMiss:
		m.log.Debug(ctx, "cache miss", "name", m.config.Name, "key", key)
	}

	m.stat.Add(ctx, MetricMiss, 1, "name", m.config.Name)
	m.cnt.misses.Inc()

	go m.build(context.WithoutCancel(ctx), e, args)

	return e.result
}

func (m *Memoizer[V]) bypass(ctx context.Context, args []interface{}) *Result[V] {
	m.stat.Add(ctx, MetricBypass, 1, "name", m.config.Name)
	m.cnt.bypass.Inc()

	r := newResult[V]()

	go func() {
		val, err := m.invoke(ctx, args)
		r.settle(val, err)
	}()

	return r
}

func (m *Memoizer[V]) build(ctx context.Context, e *entry[V], args []interface{}) {
	m.log.Debug(ctx, "building cache value", "name", m.config.Name, "key", e.key)

	val, err := m.invoke(ctx, args)

	m.stat.Add(ctx, MetricBuild, 1, "name", m.config.Name)

	// Store is updated before result is settled, so that waiters observe final state.
	if err != nil {
		m.stat.Add(ctx, MetricFailed, 1, "name", m.config.Name)
		m.cnt.failed.Inc()

		// Failures are not cached, next call retries.
		m.store.forget(e)

		m.log.Debug(ctx, "failed to build cache value",
			"error", err,
			"name", m.config.Name,
			"key", e.key)

		e.result.settle(val, err)

		return
	}

	m.evict(ctx, e)
	e.result.settle(val, nil)
}

func (m *Memoizer[V]) evict(ctx context.Context, settled *entry[V]) {
	evicted, _ := m.store.evict(settled, m.config.MaxSize)
	if evicted == nil {
		return
	}

	m.log.Debug(ctx, "evicted cache entry",
		"name", m.config.Name,
		"key", evicted.key,
		"lastAccessedAt", evicted.lastAccessedAt)
	m.stat.Add(ctx, MetricEvict, 1, "name", m.config.Name)
	m.cnt.evicted.Inc()
}

// invoke calls memoized function converting panic to error.
func (m *Memoizer[V]) invoke(ctx context.Context, args []interface{}) (val V, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero V

			val = zero
			err = ctxd.WrapError(ctx, ErrPanic, fmt.Sprintf("%v", r), "name", m.config.Name)
		}
	}()

	return m.fn(ctx, args...)
}

// Len returns number of stored entries.
func (m *Memoizer[V]) Len() int {
	return m.store.len()
}

// ExpireAll marks all entries as expired, next calls start new computations.
func (m *Memoizer[V]) ExpireAll() {
	m.store.expireAll(m.config.Clock())
}

// RemoveAll deletes all entries.
func (m *Memoizer[V]) RemoveAll() {
	m.store.removeAll()
}

// Counters returns snapshot of call counters.
func (m *Memoizer[V]) Counters() CountersSnapshot {
	return m.cnt.snapshot()
}
