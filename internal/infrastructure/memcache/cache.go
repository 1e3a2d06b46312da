package memcache

import (
	"container/list"
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/ports"
)

var (
	ErrInvalidSize = errors.New("memcache: max size must be positive")
	ErrInvalidTTL  = errors.New("memcache: ttl must be positive")
)

// Config holds the construction-time limits of a cache.
type Config struct {
	MaxSize int
	TTL     time.Duration
}

// Option customizes a cache at construction time.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now as the cache's time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
	// pos is the entry's element in the write-ordered expiry index.
	pos *list.Element
}

// Cache is a thread-safe LRU cache whose entries expire a fixed TTL after their last write.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	name    string
	maxSize int
	ttl     time.Duration
	lru     *simplelru.LRU[K, *entry[V]]
	// expiry holds keys ordered by last write. With a single TTL this is also
	// expiry order, so the sweep only ever looks at the front.
	expiry *list.List
	now    func() time.Time
	logger *logrus.Logger
}

// New creates an empty cache. name labels log lines and metrics.
func New[K comparable, V any](name string, cfg Config, logger *logrus.Logger, opts ...Option) (*Cache[K, V], error) {
	if cfg.MaxSize <= 0 {
		return nil, ErrInvalidSize
	}
	if cfg.TTL <= 0 {
		return nil, ErrInvalidTTL
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	c := &Cache[K, V]{
		name:    name,
		maxSize: cfg.MaxSize,
		ttl:     cfg.TTL,
		expiry:  list.New(),
		now:     o.now,
		logger:  logger,
	}
	lru, err := simplelru.NewLRU[K, *entry[V]](cfg.MaxSize, c.onRemove)
	if err != nil {
		return nil, err
	}
	c.lru = lru
	return c, nil
}

// onRemove runs for every removal path of the LRU (Remove, eviction, Purge).
func (c *Cache[K, V]) onRemove(_ K, e *entry[V]) {
	if e.pos != nil {
		c.expiry.Remove(e.pos)
		e.pos = nil
	}
}

// Get returns the live value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepLocked(c.now())
	e, ok := c.lru.Get(key)
	if !ok {
		c.recordMiss()
		var zero V
		return zero, false
	}
	c.recordHit()
	return e.value, true
}

// GetOrCompute returns the cached value for key, or calls compute and caches its result.
// The lookup, the compute and the store are separate steps: concurrent misses on the same
// key may each call compute.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Put(key, v)
	return v, nil
}

// Put inserts or replaces the value for key. Inserting past MaxSize evicts the least
// recently used entry.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)
	if e, ok := c.lru.Peek(key); ok {
		c.refreshLocked(key, e, value, now)
		return
	}

	e := &entry[V]{value: value, expiresAt: now.Add(c.ttl), pos: c.expiry.PushBack(key)}
	if evicted := c.lru.Add(key, e); evicted {
		c.recordEviction()
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"cache": c.name, "max_size": c.maxSize}).Trace("cache size exceeded; evicted least recently used entry")
		}
	}
}

// Update replaces the value for key only if it is present.
func (c *Cache[K, V]) Update(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)
	if e, ok := c.lru.Peek(key); ok {
		c.refreshLocked(key, e, value, now)
	}
}

// Remove deletes key if present.
func (c *Cache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
}

// Clear deletes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// Len returns the number of live entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked(c.now())
	return c.lru.Len()
}

// Keys returns the live keys from least to most recently used.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked(c.now())
	return c.lru.Keys()
}

func (c *Cache[K, V]) refreshLocked(key K, e *entry[V], value V, now time.Time) {
	e.value = value
	e.expiresAt = now.Add(c.ttl)
	c.expiry.MoveToBack(e.pos)
	c.lru.Get(key)
}

// sweepLocked drops every entry whose expiry is before now.
func (c *Cache[K, V]) sweepLocked(now time.Time) {
	expired := 0
	for front := c.expiry.Front(); front != nil; front = c.expiry.Front() {
		key := front.Value.(K)
		e, ok := c.lru.Peek(key)
		if !ok {
			c.expiry.Remove(front)
			continue
		}
		if !now.After(e.expiresAt) {
			break
		}
		c.lru.Remove(key)
		expired++
	}
	c.recordExpirations(expired)
}

var _ ports.Cache[string, int] = (*Cache[string, int])(nil)
