package utils

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

const defaultStripes = 64

// StripedMutex serializes work per key without a single global lock.
// Keys that hash to the same stripe share a mutex; unrelated keys usually don't.
type StripedMutex struct {
	stripes []sync.Mutex
}

// NewStripedMutex creates a lock with n stripes (64 if n <= 0).
func NewStripedMutex(n int) *StripedMutex {
	if n <= 0 {
		n = defaultStripes
	}
	return &StripedMutex{stripes: make([]sync.Mutex, n)}
}

func (s *StripedMutex) stripe(key string) *sync.Mutex {
	return &s.stripes[xxhash.Sum64String(key)%uint64(len(s.stripes))]
}

// Lock acquires the stripe for key and returns the matching unlock func.
func (s *StripedMutex) Lock(key string) (unlock func()) {
	m := s.stripe(key)
	m.Lock()
	return m.Unlock
}

// WithLock runs fn while holding the stripe for key.
func (s *StripedMutex) WithLock(key string, fn func() error) error {
	unlock := s.Lock(key)
	defer unlock()
	return fn()
}
