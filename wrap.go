package memoizer

import (
	"context"
	"fmt"
)

// Wrap returns memoized version of a single argument function.
func Wrap[A any, V any](fn func(ctx context.Context, a A) (V, error), options ...Option) func(ctx context.Context, a A) (V, error) {
	m := New(func(ctx context.Context, args ...interface{}) (V, error) {
		a, err := argument[A](args, 0)
		if err != nil {
			var zero V

			return zero, err
		}

		return fn(ctx, a)
	}, options...)

	return func(ctx context.Context, a A) (V, error) {
		return m.Get(ctx, a)
	}
}

// Wrap2 returns memoized version of a two arguments function.
func Wrap2[A any, B any, V any](
	fn func(ctx context.Context, a A, b B) (V, error),
	options ...Option,
) func(ctx context.Context, a A, b B) (V, error) {
	m := New(func(ctx context.Context, args ...interface{}) (V, error) {
		var zero V

		a, err := argument[A](args, 0)
		if err != nil {
			return zero, err
		}

		b, err := argument[B](args, 1)
		if err != nil {
			return zero, err
		}

		return fn(ctx, a, b)
	}, options...)

	return func(ctx context.Context, a A, b B) (V, error) {
		return m.Get(ctx, a, b)
	}
}

// PerMinute creates memoizer with entries valid for a minute.
func PerMinute[V any](fn Func[V], options ...Option) *Memoizer[V] {
	return New(fn, append([]Option{WithMaxAge(MinuteTTL)}, options...)...)
}

// PerHour creates memoizer with entries valid for an hour.
func PerHour[V any](fn Func[V], options ...Option) *Memoizer[V] {
	return New(fn, append([]Option{WithMaxAge(HourTTL)}, options...)...)
}

// argument returns typed argument or error if it has unexpected type.
func argument[A any](args []interface{}, i int) (A, error) {
	var zero A

	if i >= len(args) {
		return zero, fmt.Errorf("missing argument %d", i)
	}

	a, ok := args[i].(A)
	if !ok && args[i] != nil {
		return zero, fmt.Errorf("unexpected type %T of argument %d", args[i], i)
	}

	return a, nil
}
