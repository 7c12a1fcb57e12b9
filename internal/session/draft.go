package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"mk-orders/internal/itemset"
	"mk-orders/internal/models"
)

var ErrClosed = errors.New("session closed")

// Saver is the part of the order service a draft session writes through.
type Saver interface {
	UpdateItems(ctx context.Context, id string, items any) (models.Order, error)
	Submit(ctx context.Context, id string) (models.Order, error)
}

// Draft owns the working item set of one order while it is being edited.
// Edits stay in memory and are written by a trailing debounce; only the state
// at the moment the delay expires is written.
type Draft struct {
	id      string
	saver   Saver
	deb     *Debouncer
	timeout time.Duration
	onError func(error)

	mu      sync.Mutex
	qty     map[string]int
	keys    []string
	version uint64
	saved   uint64
	closed  bool

	// serializes writes so an older snapshot never lands after a newer one
	writeMu sync.Mutex
}

type DraftOption func(*Draft)

// WithErrorHandler is called when a debounced write fails.
func WithErrorHandler(fn func(error)) DraftOption {
	return func(d *Draft) { d.onError = fn }
}

func WithWriteTimeout(t time.Duration) DraftOption {
	return func(d *Draft) { d.timeout = t }
}

func NewDraft(id string, initial models.Lines, saver Saver, delay time.Duration, opts ...DraftOption) *Draft {
	d := &Draft{
		id:      id,
		saver:   saver,
		deb:     NewDebouncer(delay),
		timeout: 10 * time.Second,
		qty:     make(map[string]int),
	}
	for _, ln := range itemset.Merge(itemset.Normalize(initial)) {
		d.qty[ln.Key] = ln.Qty
		d.keys = append(d.keys, ln.Key)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Draft) ID() string { return d.id }

// Set changes the quantity of a line. A quantity of zero or less removes it.
func (d *Draft) Set(key string, qty int) {
	d.mutate(func() {
		if key == "" {
			return
		}
		if qty <= 0 {
			d.remove(key)
			return
		}
		if _, ok := d.qty[key]; !ok {
			d.keys = append(d.keys, key)
		}
		d.qty[key] = qty
	})
}

func (d *Draft) Remove(keys ...string) {
	d.mutate(func() {
		for _, k := range keys {
			d.remove(k)
		}
	})
}

func (d *Draft) Clear() {
	d.mutate(func() {
		d.qty = make(map[string]int)
		d.keys = nil
	})
}

func (d *Draft) remove(key string) {
	if _, ok := d.qty[key]; !ok {
		return
	}
	delete(d.qty, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i:i], d.keys[i+1:]...)
			break
		}
	}
}

func (d *Draft) mutate(fn func()) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	fn()
	d.version++
	d.mu.Unlock()

	d.deb.Schedule(d.flushAsync)
}

func (d *Draft) snapshotLocked() models.Lines {
	out := make(models.Lines, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, models.OrderLine{Key: k, Qty: d.qty[k]})
	}
	return out
}

// Snapshot returns the current working set in edit order.
func (d *Draft) Snapshot() models.Lines {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Draft) Summary() itemset.Summary {
	return itemset.Summarize(d.Snapshot())
}

// Dirty reports whether edits exist that have not been written.
func (d *Draft) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version != d.saved
}

func (d *Draft) flushAsync() {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.write(ctx); err != nil && !errors.Is(err, ErrClosed) {
		logrus.WithError(err).WithField("id", d.id).Error("debounced save failed")
		if d.onError != nil {
			d.onError(err)
		}
	}
}

// Flush cancels the pending debounced write and writes now.
func (d *Draft) Flush(ctx context.Context) error {
	d.deb.Cancel()
	return d.write(ctx)
}

func (d *Draft) write(ctx context.Context) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.version == d.saved {
		d.mu.Unlock()
		return nil
	}
	lines := d.snapshotLocked()
	v := d.version
	d.mu.Unlock()

	if _, err := d.saver.UpdateItems(ctx, d.id, lines); err != nil {
		return err
	}

	d.mu.Lock()
	d.saved = v
	d.mu.Unlock()
	return nil
}

// Submit writes pending edits and submits the order. The session is closed
// when the submit succeeds.
func (d *Draft) Submit(ctx context.Context) (models.Order, error) {
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		return models.Order{}, ErrClosed
	}

	if err := d.Flush(ctx); err != nil {
		return models.Order{}, err
	}
	o, err := d.saver.Submit(ctx, d.id)
	if err != nil {
		return models.Order{}, err
	}
	d.Close()
	return o, nil
}

// Close cancels any pending write and waits for a write already in flight.
// Unsaved edits are dropped; call Flush first to keep them. No write reaches
// the saver once Close has returned.
func (d *Draft) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.deb.Cancel()

	// wait for an in-flight write
	d.writeMu.Lock()
	d.writeMu.Unlock()
}
