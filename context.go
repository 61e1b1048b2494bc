package memoizer

import (
	"context"
	"time"
)

type (
	skipReadCtxKey struct{}
	ttlCtxKey      struct{}
)

// WithTTL returns context with entry max age overridden.
//
// Override only applies to an entry created by a call with such context,
// hits on existing entries keep their original expiration.
func WithTTL(ctx context.Context, ttl time.Duration) context.Context {
	return context.WithValue(ctx, ttlCtxKey{}, ttl)
}

// TTL returns max age override from context and true if it is set.
func TTL(ctx context.Context) (time.Duration, bool) {
	ttl, ok := ctx.Value(ttlCtxKey{}).(time.Duration)

	return ttl, ok
}

// WithSkipRead returns context with cache read ignored.
//
// With such context a call does not reuse stored entry, it starts a new computation
// and replaces the entry for its key.
func WithSkipRead(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipReadCtxKey{}, true)
}

// SkipRead returns true if cache read is ignored in context.
func SkipRead(ctx context.Context) bool {
	_, ok := ctx.Value(skipReadCtxKey{}).(bool)

	return ok
}
