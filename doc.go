// Package memoizer caches results of expensive functions by their arguments.
// Focused on race-free sharing of computations between concurrent callers.
//
// Features:
//
//   - Concurrent calls with equal keys share a single in-flight computation.
//   - Entry is registered before computation starts, duplicate start is not possible.
//   - Entries expire lazily after configured max age, no background janitor.
//   - Soft limit of stored entries with least recently accessed eviction of settled values.
//   - Failures are never cached and are delivered to every sharing caller.
//   - Caller cancellation stops waiting, but not the shared computation.
//   - Pluggable key resolvers, JSON of all arguments by default.
//   - Allows logging, stats collection.
//   - Allows mass expiration with Invalidator.
package memoizer
