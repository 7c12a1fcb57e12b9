package cache

import (
	"hash/fnv"
	"sync"
	"time"
)

const defaultShards = 16

type shard[V any] struct {
	mu   sync.RWMutex
	data map[string]expiring[V]
}

type ShardedCache[V any] struct {
	shards []shard[V]
	ttl    time.Duration
	now    func() time.Time

	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

func WithShards(n int) Option { return func(o *options) { o.shards = n } }

// NewShardedCache spreads keys over shards by fnv hash. The shard count is
// rounded up to a power of two.
func NewShardedCache[V any](opts ...Option) *ShardedCache[V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	n := o.shards
	if n <= 0 {
		n = defaultShards
	}
	size := 1
	for size < n {
		size <<= 1
	}

	c := &ShardedCache[V]{
		shards: make([]shard[V], size),
		ttl:    o.ttl,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	for i := range c.shards {
		c.shards[i] = shard[V]{data: make(map[string]expiring[V])}
	}
	if c.ttl > 0 {
		c.ticker = time.NewTicker(c.ttl / 2)
		go func() {
			for {
				select {
				case <-c.ticker.C:
					c.purge()
				case <-c.stop:
					return
				}
			}
		}()
	}
	return c
}

func (c *ShardedCache[V]) Close() {
	c.once.Do(func() {
		if c.ticker != nil {
			c.ticker.Stop()
		}
		close(c.stop)
	})
}

func (c *ShardedCache[V]) shardFor(key string) *shard[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	idx := int(h.Sum32()) & (len(c.shards) - 1)
	return &c.shards[idx]
}

func (c *ShardedCache[V]) wrap(v V) expiring[V] {
	e := expiring[V]{V: v}
	if c.ttl > 0 {
		e.E = c.now().Add(c.ttl)
	}
	return e
}

func (c *ShardedCache[V]) Put(key string, v V) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = c.wrap(v)
}

func (c *ShardedCache[V]) Get(key string) (V, bool) {
	var zero V
	s := c.shardFor(key)
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if e.expired(c.now()) {
		s.mu.Lock()
		if cur, ok := s.data[key]; ok && cur.E == e.E {
			delete(s.data, key)
		}
		s.mu.Unlock()
		return zero, false
	}
	return e.V, true
}

func (c *ShardedCache[V]) Update(key string, fn func(cur V, ok bool) (V, bool)) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if ok && e.expired(c.now()) {
		delete(s.data, key)
		e, ok = expiring[V]{}, false
	}
	next, store := fn(e.V, ok)
	if !store {
		return e.V, false
	}
	s.data[key] = c.wrap(next)
	return next, true
}

func (c *ShardedCache[V]) Delete(key string) {
	s := c.shardFor(key)
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
}

func (c *ShardedCache[V]) DeleteFunc(key string, fn func(cur V) bool) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok || e.expired(c.now()) {
		delete(s.data, key)
		var zero V
		return zero, false
	}
	if fn(e.V) {
		delete(s.data, key)
	}
	return e.V, true
}

func (c *ShardedCache[V]) Snapshot() map[string]V {
	out := make(map[string]V)
	now := c.now()
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		for k, e := range s.data {
			if !e.expired(now) {
				out[k] = e.V
			}
		}
		s.mu.RUnlock()
	}
	return out
}

func (c *ShardedCache[V]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		n += len(s.data)
		s.mu.RUnlock()
	}
	return n
}

func (c *ShardedCache[V]) purge() {
	now := c.now()
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		for k, e := range s.data {
			if e.expired(now) {
				delete(s.data, k)
			}
		}
		s.mu.Unlock()
	}
}
