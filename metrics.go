package memoizer

import (
	"github.com/puzpuzpuz/xsync"
)

// Metric names reported to stats.Tracker, each labeled with "name".
const (
	MetricHit     = "cache_hit"
	MetricMiss    = "cache_miss"
	MetricExpired = "cache_expired"
	MetricBuild   = "cache_build"
	MetricFailed  = "cache_failed"
	MetricEvict   = "cache_evict"
	MetricBypass  = "cache_bypass"
	MetricItems   = "cache_items"
)

// CountersSnapshot is a point in time copy of memoizer counters.
type CountersSnapshot struct {
	// Hits is a number of calls served from a valid entry, settled or in-flight.
	Hits int64
	// Shared is a number of hits served from an in-flight computation.
	Shared int64
	// Misses is a number of calls that started a computation, including expired hits.
	Misses  int64
	Expired int64
	Failed  int64
	Evicted int64
	Bypass  int64
}

type counters struct {
	hits    *xsync.Counter
	shared  *xsync.Counter
	misses  *xsync.Counter
	expired *xsync.Counter
	failed  *xsync.Counter
	evicted *xsync.Counter
	bypass  *xsync.Counter
}

func newCounters() counters {
	return counters{
		hits:    new(xsync.Counter),
		shared:  new(xsync.Counter),
		misses:  new(xsync.Counter),
		expired: new(xsync.Counter),
		failed:  new(xsync.Counter),
		evicted: new(xsync.Counter),
		bypass:  new(xsync.Counter),
	}
}

func (c counters) snapshot() CountersSnapshot {
	return CountersSnapshot{
		Hits:    c.hits.Value(),
		Shared:  c.shared.Value(),
		Misses:  c.misses.Value(),
		Expired: c.expired.Value(),
		Failed:  c.failed.Value(),
		Evicted: c.evicted.Value(),
		Bypass:  c.bypass.Value(),
	}
}
