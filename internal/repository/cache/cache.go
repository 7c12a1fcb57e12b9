package cache

import (
	"sync"
	"time"
)

type KV[V any] interface {
	Put(key string, v V)
	Get(key string) (V, bool)
	Delete(key string)
	// Update runs fn on the current value under the key's lock. When fn returns
	// false nothing is stored.
	Update(key string, fn func(cur V, ok bool) (V, bool)) (V, bool)
	// DeleteFunc removes key when fn reports true for its value, under the
	// key's lock. It returns the value seen and whether the key was present.
	DeleteFunc(key string, fn func(cur V) bool) (V, bool)
	Snapshot() map[string]V
	Len() int
}

type Cache[V any] struct {
	data map[string]expiring[V]
	mu   sync.RWMutex

	ttl    time.Duration
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
	now    func() time.Time
}

type Option func(*options)

type options struct {
	ttl    time.Duration
	shards int
}

func WithTTL(ttl time.Duration) Option { return func(o *options) { o.ttl = ttl } }

func NewCache[V any](opts ...Option) *Cache[V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	c := &Cache[V]{
		data: make(map[string]expiring[V]),
		ttl:  o.ttl,
		stop: make(chan struct{}),
		now:  time.Now,
	}

	if c.ttl > 0 {
		c.ticker = time.NewTicker(c.ttl / 2)
		go func() {
			for {
				select {
				case <-c.ticker.C:
					c.purgeExpired()
				case <-c.stop:
					return
				}
			}
		}()
	}
	return c
}

func (c *Cache[V]) Close() {
	c.once.Do(func() {
		if c.ticker != nil {
			c.ticker.Stop()
		}
		close(c.stop)
	})
}

type expiring[V any] struct {
	V V
	E time.Time
}

func (e expiring[V]) expired(now time.Time) bool {
	return !e.E.IsZero() && now.After(e.E)
}

func (c *Cache[V]) wrap(v V) expiring[V] {
	e := expiring[V]{V: v}
	if c.ttl > 0 {
		e.E = c.now().Add(c.ttl)
	}
	return e
}

func (c *Cache[V]) Put(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = c.wrap(v)
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if e.expired(c.now()) {
		c.Delete(key)
		return zero, false
	}
	return e.V, true
}

func (c *Cache[V]) Update(key string, fn func(cur V, ok bool) (V, bool)) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if ok && e.expired(c.now()) {
		delete(c.data, key)
		e, ok = expiring[V]{}, false
	}
	next, store := fn(e.V, ok)
	if !store {
		return e.V, false
	}
	c.data[key] = c.wrap(next)
	return next, true
}

func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
}

func (c *Cache[V]) DeleteFunc(key string, fn func(cur V) bool) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if !ok || e.expired(c.now()) {
		delete(c.data, key)
		var zero V
		return zero, false
	}
	if fn(e.V) {
		delete(c.data, key)
	}
	return e.V, true
}

func (c *Cache[V]) purgeExpired() {
	now := c.now()
	c.mu.Lock()
	for k, e := range c.data {
		if e.expired(now) {
			delete(c.data, k)
		}
	}
	c.mu.Unlock()
}

func (c *Cache[V]) Snapshot() map[string]V {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]V, len(c.data))
	now := c.now()
	for k, e := range c.data {
		if e.expired(now) {
			continue
		}
		out[k] = e.V
	}
	return out
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
