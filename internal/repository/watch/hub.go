package watch

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"mk-orders/internal/models"
)

// Callback receives the full set of orders matching a subscription.
type Callback func([]models.Order)

// Source loads every stored order.
type Source func(ctx context.Context) ([]models.Order, error)

// Hub pushes matching order sets to subscribers. Each subscriber has its own
// goroutine and a one-slot mailbox: bursts of changes coalesce into a single
// push carrying the latest set, and pushes to one subscriber never overlap.
type Hub struct {
	source Source

	mu     sync.Mutex
	subs   map[uint64]*subscriber
	nextID uint64
	closed bool
}

type subscriber struct {
	pred   models.Predicate
	cb     Callback
	wake   chan struct{}
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

func NewHub(source Source) *Hub {
	return &Hub{source: source, subs: make(map[uint64]*subscriber)}
}

// Subscribe registers cb for orders matching pred and schedules an initial
// push. The returned func stops delivery; it is safe to call more than once.
func (h *Hub) Subscribe(pred models.Predicate, cb Callback) func() {
	if pred == nil {
		pred = models.Any
	}
	s := &subscriber{
		pred:   pred,
		cb:     cb,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(s.exited)
		return func() {}
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = s
	h.mu.Unlock()

	go h.run(s)
	s.signal()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
		s.stop()
	}
}

// Notify tells subscribers that an order changed. before or after may be nil
// for creates and deletes. Only subscribers whose predicate matched one of the
// two states are woken.
func (h *Hub) Notify(before, after *models.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs {
		if (before != nil && s.pred(*before)) || (after != nil && s.pred(*after)) {
			s.signal()
		}
	}
}

// Refresh wakes every subscriber.
func (h *Hub) Refresh() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs {
		s.signal()
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close stops all subscribers and waits for in-flight pushes to return.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := h.subs
	h.subs = make(map[uint64]*subscriber)
	h.mu.Unlock()

	for _, s := range subs {
		s.stop()
		<-s.exited
	}
}

// stop ends delivery. Both Close and the unsubscribe func call it.
func (s *subscriber) stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *subscriber) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (h *Hub) run(s *subscriber) {
	defer close(s.exited)
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		all, err := h.source(context.Background())
		if err != nil {
			logrus.WithError(err).Error("watch: load orders")
			continue
		}
		matching := models.Filter(all, s.pred)
		models.SortByShipDate(matching)

		select {
		case <-s.done:
			return
		default:
		}
		s.cb(matching)
	}
}
