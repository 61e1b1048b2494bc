package memoizer

import (
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// Unbounded is a MaxSize value that disables size-bounded eviction.
const Unbounded = -1

// Preset max ages.
const (
	MinuteTTL = time.Minute
	HourTTL   = time.Hour
)

// Option changes Config.
type Option func(cfg *Config)

// Config controls memoizer instance.
type Config struct {
	// Name is memoizer instance name, used in stats and logging.
	Name string

	// MaxAge is a validity window of an entry since its creation, default 0.
	//
	// Zero MaxAge makes every entry expired for any later call.
	MaxAge time.Duration

	// MaxSize is a soft limit of stored entries, default Unbounded.
	//
	// Limit is checked when a computation succeeds, with its own entry already counted:
	// if store holds MaxSize or more entries, least recently accessed other succeeded entry
	// is evicted. So a steady flow of distinct keys keeps MaxSize-1 entries, for example
	// MaxSize 3 holds 2 entries.
	//
	// Eviction only removes entries with successful results, so in-flight computations
	// can make store grow over the limit. Zero MaxSize disables caching, every call is
	// passed to the memoized function directly.
	MaxSize int

	// Resolver derives cache key from call arguments, default JSONResolver.
	Resolver Resolver

	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Clock returns current time, default time.Now.
	Clock func() time.Time
}

func newConfig(options ...Option) Config {
	cfg := Config{
		MaxSize: Unbounded,
	}

	for _, option := range options {
		option(&cfg)
	}

	if cfg.Resolver == nil {
		cfg.Resolver = JSONResolver
	}

	if cfg.Logger == nil {
		cfg.Logger = ctxd.NoOpLogger{}
	}

	if cfg.Stats == nil {
		cfg.Stats = stats.NoOp{}
	}

	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	if cfg.MaxSize < 0 {
		cfg.MaxSize = Unbounded
	}

	return cfg
}

// WithName sets instance name.
func WithName(name string) Option {
	return func(cfg *Config) {
		cfg.Name = name
	}
}

// WithMaxAge sets entry validity window.
func WithMaxAge(maxAge time.Duration) Option {
	return func(cfg *Config) {
		cfg.MaxAge = maxAge
	}
}

// WithMaxSize sets soft limit of stored entries, 0 disables caching.
func WithMaxSize(maxSize int) Option {
	return func(cfg *Config) {
		cfg.MaxSize = maxSize
	}
}

// WithResolver sets cache key resolver.
func WithResolver(r Resolver) Option {
	return func(cfg *Config) {
		cfg.Resolver = r
	}
}

// WithLogger sets logger.
func WithLogger(l ctxd.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// WithStats sets stats tracker.
func WithStats(st stats.Tracker) Option {
	return func(cfg *Config) {
		cfg.Stats = st
	}
}

// WithClock sets time source.
func WithClock(now func() time.Time) Option {
	return func(cfg *Config) {
		cfg.Clock = now
	}
}
