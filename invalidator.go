package memoizer

import (
	"fmt"
	"sync"
	"time"
)

// Expirer is implemented by Memoizer.
type Expirer interface {
	ExpireAll()
}

// Invalidator is a registry of cache expiration triggers.
type Invalidator struct {
	sync.Mutex

	// SkipInterval defines minimal duration between two cache invalidations (flood protection).
	SkipInterval time.Duration

	// Callbacks contains a list of functions to call on invalidate.
	Callbacks []func()

	lastRun time.Time
}

// Add registers memoizers for invalidation.
func (i *Invalidator) Add(memoizers ...Expirer) {
	i.Lock()
	defer i.Unlock()

	for _, m := range memoizers {
		i.Callbacks = append(i.Callbacks, m.ExpireAll)
	}
}

// Invalidate expires all registered memoizers.
//
// Entries are not removed, but every next call starts a new computation.
func (i *Invalidator) Invalidate() error {
	i.Lock()
	defer i.Unlock()

	if len(i.Callbacks) == 0 {
		return ErrNothingToInvalidate
	}

	if i.SkipInterval == 0 {
		i.SkipInterval = 15 * time.Second
	}

	if time.Since(i.lastRun) < i.SkipInterval {
		return fmt.Errorf("%w at %s, %s did not pass",
			ErrAlreadyInvalidated, i.lastRun.String(), i.SkipInterval.String())
	}

	i.lastRun = time.Now()
	for _, cb := range i.Callbacks {
		cb()
	}

	return nil
}
