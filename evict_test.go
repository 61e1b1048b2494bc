package memoizer_test

import (
	"context"
	"testing"
	"time"

	"github.com/bool64/stats"
	memoizer "github.com/WebileApps/async-memoizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMemoizer_evict(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	st := &stats.TrackerMock{}
	f := &identity{}
	m := memoizer.New(f.fn,
		memoizer.WithMaxAge(time.Hour),
		memoizer.WithMaxSize(3),
		memoizer.WithClock(clock.Now),
		memoizer.WithStats(st),
	)

	get := func(k string) {
		clock.Advance(time.Second)

		v, err := m.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, k, v)
	}

	get("a")
	get("b")
	get("a") // Hit makes "b" least recently accessed.
	assert.Equal(t, int64(2), f.calls.Load())

	get("c")
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1, st.Int(memoizer.MetricEvict))

	get("a")
	assert.Equal(t, int64(3), f.calls.Load())

	get("b")
	assert.Equal(t, int64(4), f.calls.Load())
	assert.LessOrEqual(t, m.Len(), 3)
}

func TestMemoizer_evict_inFlight(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	gates := map[string]chan struct{}{
		"a": make(chan struct{}),
		"b": make(chan struct{}),
		"c": make(chan struct{}),
	}
	m := memoizer.New(func(ctx context.Context, args ...interface{}) (string, error) {
		k := args[0].(string)
		<-gates[k]

		return k, nil
	},
		memoizer.WithMaxAge(time.Hour),
		memoizer.WithMaxSize(1),
		memoizer.WithClock(clock.Now),
	)

	results := map[string]*memoizer.Result[string]{}

	for _, k := range []string{"a", "b", "c"} {
		clock.Advance(time.Second)

		results[k] = m.Call(ctx, k)
	}

	// Pending entries are not evicted, store grows over the limit.
	assert.Equal(t, 3, m.Len())

	settle := func(k string) {
		close(gates[k])

		v, err := results[k].Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, k, v)
	}

	// No settled candidates besides "a" itself.
	settle("a")
	assert.Equal(t, 3, m.Len())

	settle("b")
	assert.Equal(t, 2, m.Len())

	settle("c")
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, int64(2), m.Counters().Evicted)
}

func TestMemoizer_evict_steadyLen(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	f := &identity{}
	m := memoizer.New(f.fn,
		memoizer.WithMaxAge(time.Hour),
		memoizer.WithMaxSize(3),
		memoizer.WithClock(clock.Now),
	)

	var lens []int

	for _, k := range []string{"a", "b", "c", "d"} {
		clock.Advance(time.Second)

		_, err := m.Get(ctx, k)
		require.NoError(t, err)

		lens = append(lens, m.Len())
	}

	// Own entry is counted against the limit, so MaxSize-1 entries are kept.
	assert.Equal(t, []int{1, 2, 2, 2}, lens)
}

func TestMemoizer_evict_itemsGauge(t *testing.T) {
	ctx := context.Background()
	st := &stats.TrackerMock{}
	m := memoizer.New(func(ctx context.Context, args ...interface{}) (int, error) {
		return args[0].(int), nil
	},
		memoizer.WithMaxAge(time.Hour),
		memoizer.WithMaxSize(10),
		memoizer.WithStats(st),
	)

	g := errgroup.Group{}

	for i := 0; i < 200; i++ {
		i := i

		g.Go(func() error {
			_, err := m.Get(ctx, i)

			return err
		})
	}

	require.NoError(t, g.Wait())

	// Gauge is published with store lock held, so the last value matches store size.
	assert.Equal(t, m.Len(), st.Int(memoizer.MetricItems))

	m.RemoveAll()
	assert.Equal(t, 0, st.Int(memoizer.MetricItems))
}
