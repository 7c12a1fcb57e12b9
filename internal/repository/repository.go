package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"mk-orders/internal/itemset"
	"mk-orders/internal/lifecycle"
	"mk-orders/internal/models"
	"mk-orders/internal/repository/cache"
	"mk-orders/internal/repository/memory"
	"mk-orders/internal/repository/postgres"
	"mk-orders/internal/repository/watch"
)

// OrderPersistence is the source of truth for orders.
type OrderPersistence interface {
	Create(ctx context.Context, o models.Order) error
	Get(ctx context.Context, id string) (models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, id string, patch models.OrderPatch) (before, after models.Order, err error)
	// Delete removes the order. With statuses it only removes an order whose
	// current status is one of them and returns a *lifecycle.StateError otherwise.
	Delete(ctx context.Context, id string, statuses ...models.Status) error
}

type OrderCache interface {
	PutOrder(order models.Order)
	GetOrder(id string) (models.Order, error)
	GetAllOrders() []models.Order
	DeleteOrder(id string)
}

// OrderStore is what the service layer works against.
//
// Reads and writes are separate calls, so a read-modify-write done by a caller
// is not atomic: two writers editing the same order race and the last write
// wins for items and meta. Update merges timestamps and appends history inside
// the persistence layer, so stamps and log entries written by the other side
// survive.
type OrderStore interface {
	// Create stores a new order and returns the id assigned to it.
	Create(ctx context.Context, o models.Order) (string, error)
	Get(ctx context.Context, id string) (models.Order, error)
	// List returns orders matching pred sorted by ship date.
	List(ctx context.Context, pred models.Predicate) ([]models.Order, error)
	Update(ctx context.Context, id string, patch models.OrderPatch) (models.Order, error)
	// Delete removes the order, optionally only while it is in one of statuses.
	// The status check and the removal are one atomic step.
	Delete(ctx context.Context, id string, statuses ...models.Status) error
	// Subscribe pushes the full matching set now and after every change to a
	// matching order. The returned func unsubscribes.
	Subscribe(pred models.Predicate, cb watch.Callback) func()
}

type Repository struct {
	OrderPersistence
	OrderCache

	hub   *watch.Hub
	newID func() string

	// removed holds ids deleted through this store. Cache writes racing a
	// delete are dropped for them.
	mu      sync.Mutex
	removed map[string]struct{}
}

var _ OrderStore = (*Repository)(nil)

type Option func(*Repository)

func WithIDGenerator(fn func() string) Option {
	return func(r *Repository) { r.newID = fn }
}

func New(persistence OrderPersistence, orderCache OrderCache, opts ...Option) *Repository {
	r := &Repository{
		OrderPersistence: persistence,
		OrderCache:       orderCache,
		newID:            uuid.NewString,
		removed:          make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.hub = watch.NewHub(persistence.GetAll)
	return r
}

// NewRepository stores orders in postgres behind a ttl cache.
func NewRepository(db *gorm.DB, cacheTTL time.Duration, shards int) *Repository {
	return New(
		postgres.NewOrderPostgres(db),
		cache.NewOrderCache(cache.NewShardedCache[models.Order](cache.WithTTL(cacheTTL), cache.WithShards(shards))),
	)
}

// NewMemoryRepository keeps orders in process only.
func NewMemoryRepository(shards int) *Repository {
	return New(
		memory.NewOrderMemory(cache.NewShardedCache[models.Order](cache.WithShards(shards))),
		cache.NewOrderCache(cache.NewCache[models.Order]()),
	)
}

func (r *Repository) Create(ctx context.Context, o models.Order) (string, error) {
	if o.ID == "" {
		o.ID = r.newID()
	}
	o.Items = itemset.Normalize(o.Items)
	o.Total = o.Items.Total()
	if o.History == nil {
		o.History = models.History{}
	}

	if err := r.OrderPersistence.Create(ctx, o); err != nil {
		return "", classify(err)
	}
	r.mu.Lock()
	delete(r.removed, o.ID)
	r.PutOrder(o)
	r.mu.Unlock()
	r.hub.Notify(nil, &o)
	return o.ID, nil
}

// Get reads through the cache.
func (r *Repository) Get(ctx context.Context, id string) (models.Order, error) {
	if o, err := r.GetOrder(id); err == nil {
		return o, nil
	}
	o, err := r.OrderPersistence.Get(ctx, id)
	if err != nil {
		return models.Order{}, classify(err)
	}
	r.cacheUnlessRemoved(o)
	return o, nil
}

func (r *Repository) List(ctx context.Context, pred models.Predicate) ([]models.Order, error) {
	all, err := r.OrderPersistence.GetAll(ctx)
	if err != nil {
		return nil, classify(err)
	}
	out := models.Filter(all, pred)
	models.SortByShipDate(out)
	return out, nil
}

func (r *Repository) Update(ctx context.Context, id string, patch models.OrderPatch) (models.Order, error) {
	if patch.Items != nil {
		lines := itemset.Normalize(*patch.Items)
		patch.Items = &lines
	}
	before, after, err := r.OrderPersistence.Update(ctx, id, patch)
	if err != nil {
		r.DeleteOrder(id)
		return models.Order{}, classify(err)
	}
	r.cacheUnlessRemoved(after)
	r.hub.Notify(&before, &after)
	return after, nil
}

// cacheUnlessRemoved caches o unless its id was deleted after o was read.
func (r *Repository) cacheUnlessRemoved(o models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, gone := r.removed[o.ID]; gone {
		return
	}
	r.PutOrder(o)
}

func (r *Repository) Delete(ctx context.Context, id string, statuses ...models.Status) error {
	before, _ := r.Get(ctx, id)
	if err := r.OrderPersistence.Delete(ctx, id, statuses...); err != nil {
		var se *lifecycle.StateError
		if errors.As(err, &se) {
			r.DeleteOrder(id)
		}
		return classify(err)
	}
	r.mu.Lock()
	r.removed[id] = struct{}{}
	r.DeleteOrder(id)
	r.mu.Unlock()
	if before.ID != "" {
		r.hub.Notify(&before, nil)
	} else {
		r.hub.Refresh()
	}
	return nil
}

func (r *Repository) Subscribe(pred models.Predicate, cb watch.Callback) func() {
	return r.hub.Subscribe(pred, cb)
}

// Warm loads every persisted order into the cache.
func (r *Repository) Warm(ctx context.Context) (int, error) {
	all, err := r.OrderPersistence.GetAll(ctx)
	if err != nil {
		return 0, classify(err)
	}
	for _, o := range all {
		if !o.Status.Valid() {
			logrus.WithField("id", o.ID).WithField("status", o.Status).Warn("skip order with unknown status")
			continue
		}
		r.PutOrder(o)
	}
	return len(all), nil
}

func (r *Repository) Close() {
	r.hub.Close()
}

// classify maps persistence failures onto the lifecycle error kinds.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, lifecycle.ErrNotFound),
		errors.Is(err, lifecycle.ErrInvalidState),
		errors.Is(err, lifecycle.ErrStoreUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", lifecycle.ErrNotFound, err)
	}

	var eh cache.ErrorHandler
	if errors.As(err, &eh) && eh.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", lifecycle.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", lifecycle.ErrStoreUnavailable, err)
}
