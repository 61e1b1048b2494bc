package memoizer

// SentinelError is an error.
type SentinelError string

const (
	// ErrKeyResolution indicates failure to derive cache key from call arguments.
	ErrKeyResolution = SentinelError("failed to resolve cache key")

	// ErrPanic indicates the memoized function panicked instead of returning.
	ErrPanic = SentinelError("panic in memoized function")

	// ErrNothingToInvalidate indicates no caches were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}
