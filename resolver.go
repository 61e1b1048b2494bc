package memoizer

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Resolver derives cache key from call arguments.
//
// Equal keys are treated as equal calls, collisions of semantically different calls
// are resolver's responsibility.
type Resolver func(args []interface{}) (string, error)

// JSONResolver serializes full ordered argument list as JSON array.
//
// Map keys are sorted by encoding/json, so structurally equal arguments produce equal keys.
func JSONResolver(args []interface{}) (string, error) {
	if args == nil {
		args = []interface{}{}
	}

	b, err := json.Marshal(args)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// HashedResolver returns resolver that replaces keys of r with their xxhash digest.
//
// Use it to keep memory footprint of keys low with large arguments.
func HashedResolver(r Resolver) Resolver {
	if r == nil {
		r = JSONResolver
	}

	return func(args []interface{}) (string, error) {
		k, err := r(args)
		if err != nil {
			return "", err
		}

		return strconv.FormatUint(xxhash.Sum64String(k), 16), nil
	}
}

// ArgsResolver returns resolver that serializes only arguments at given positions.
func ArgsResolver(indexes ...int) Resolver {
	return func(args []interface{}) (string, error) {
		subset := make([]interface{}, 0, len(indexes))

		for _, i := range indexes {
			if i < 0 || i >= len(args) {
				return "", fmt.Errorf("argument %d is out of range, %d arguments received", i, len(args))
			}

			subset = append(subset, args[i])
		}

		return JSONResolver(subset)
	}
}
