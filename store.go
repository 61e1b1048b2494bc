package memoizer

import (
	"sync"
	"time"
)

// entry is a cache entry.
type entry[V any] struct {
	key            string
	result         *Result[V]
	expiresAt      time.Time
	lastAccessedAt time.Time
}

type lookupStatus int

const (
	statusMiss lookupStatus = iota
	statusExpired
	statusHit
	statusShared
)

// store maps keys to entries, all access is serialized with a mutex.
type store[V any] struct {
	sync.Mutex
	data map[string]*entry[V]

	// onLen receives number of entries after every change, it is called with lock held.
	onLen func(items int)
}

func newStore[V any](onLen func(items int)) *store[V] {
	if onLen == nil {
		onLen = func(int) {}
	}

	return &store[V]{data: map[string]*entry[V]{}, onLen: onLen}
}

// acquire returns a valid entry for key or registers a new pending one.
//
// Lookup and registration happen in a single critical section, so concurrent
// calls for the same key can not both miss.
func (s *store[V]) acquire(key string, now time.Time, maxAge time.Duration, skipRead bool) (*entry[V], lookupStatus, int) {
	s.Lock()
	defer s.Unlock()

	status := statusMiss

	if e, found := s.data[key]; found {
		if !skipRead && now.Before(e.expiresAt) {
			e.lastAccessedAt = now

			if e.result.State() == Pending {
				return e, statusShared, len(s.data)
			}

			return e, statusHit, len(s.data)
		}

		if !skipRead {
			status = statusExpired
		}

		delete(s.data, key)
	}

	e := &entry[V]{
		key:            key,
		result:         newResult[V](),
		expiresAt:      now.Add(maxAge),
		lastAccessedAt: now,
	}
	s.data[key] = e
	s.onLen(len(s.data))

	return e, status, len(s.data)
}

// forget removes e if it is still stored under its key.
func (s *store[V]) forget(e *entry[V]) (bool, int) {
	s.Lock()
	defer s.Unlock()

	if s.data[e.key] != e {
		return false, len(s.data)
	}

	delete(s.data, e.key)
	s.onLen(len(s.data))

	return true, len(s.data)
}

// evict removes least recently accessed succeeded entry if store has reached maxSize.
//
// Entry being settled is excluded from candidates, pending and failed entries are never evicted.
func (s *store[V]) evict(settled *entry[V], maxSize int) (*entry[V], int) {
	if maxSize == Unbounded {
		return nil, 0
	}

	s.Lock()
	defer s.Unlock()

	if len(s.data) < maxSize {
		return nil, len(s.data)
	}

	var oldest *entry[V]

	for _, e := range s.data {
		if e == settled || e.result.State() != Succeeded {
			continue
		}

		if oldest == nil || e.lastAccessedAt.Before(oldest.lastAccessedAt) {
			oldest = e
		}
	}

	if oldest != nil {
		delete(s.data, oldest.key)
		s.onLen(len(s.data))
	}

	return oldest, len(s.data)
}

func (s *store[V]) len() int {
	s.Lock()
	defer s.Unlock()

	return len(s.data)
}

// expireAll marks all entries as expired, in-flight computations are not affected.
func (s *store[V]) expireAll(now time.Time) {
	s.Lock()
	defer s.Unlock()

	for _, e := range s.data {
		e.expiresAt = now
	}
}

func (s *store[V]) removeAll() {
	s.Lock()
	defer s.Unlock()

	s.data = make(map[string]*entry[V])
	s.onLen(0)
}
