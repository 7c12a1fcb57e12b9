package watch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mk-orders/internal/models"
	"mk-orders/internal/repository/watch"
)

type fakeSource struct {
	mu     sync.Mutex
	orders []models.Order
	err    error
}

func (f *fakeSource) load(context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeSource) set(orders ...models.Order) {
	f.mu.Lock()
	f.orders = orders
	f.mu.Unlock()
}

type recorder struct {
	mu     sync.Mutex
	pushes [][]models.Order
}

func (r *recorder) cb(orders []models.Order) {
	r.mu.Lock()
	r.pushes = append(r.pushes, orders)
	r.mu.Unlock()
}

func (r *recorder) last() ([]models.Order, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pushes) == 0 {
		return nil, 0
	}
	return r.pushes[len(r.pushes)-1], len(r.pushes)
}

func ids(orders []models.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestHub_InitialPushAndRelevantChanges(t *testing.T) {
	d1 := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	src := &fakeSource{}
	src.set(
		models.Order{ID: "b", Status: models.StatusPending, Meta: models.Meta{ShipDate: &d2}},
		models.Order{ID: "a", Status: models.StatusPending, Meta: models.Meta{ShipDate: &d1}},
		models.Order{ID: "c", Status: models.StatusShipped},
	)

	hub := watch.NewHub(src.load)
	defer hub.Close()

	rec := &recorder{}
	unsub := hub.Subscribe(models.InStatus(models.StatusPending), rec.cb)
	defer unsub()

	require.Eventually(t, func() bool {
		got, n := rec.last()
		return n == 1 && len(got) == 2
	}, time.Second, 5*time.Millisecond)
	got, _ := rec.last()
	require.Equal(t, []string{"a", "b"}, ids(got), "sorted by ship date")

	// A shipped order changing does not concern pending subscribers.
	shipped := models.Order{ID: "c", Status: models.StatusShipped}
	hub.Notify(&shipped, &shipped)
	time.Sleep(20 * time.Millisecond)
	_, n := rec.last()
	require.Equal(t, 1, n)

	// Leaving the set is relevant through the before state.
	before := models.Order{ID: "a", Status: models.StatusPending}
	after := models.Order{ID: "a", Status: models.StatusAccepted}
	src.set(
		models.Order{ID: "b", Status: models.StatusPending, Meta: models.Meta{ShipDate: &d2}},
		after,
		shipped,
	)
	hub.Notify(&before, &after)

	require.Eventually(t, func() bool {
		got, n := rec.last()
		return n == 2 && len(got) == 1 && got[0].ID == "b"
	}, time.Second, 5*time.Millisecond)
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	src := &fakeSource{}
	hub := watch.NewHub(src.load)
	defer hub.Close()

	rec := &recorder{}
	unsub := hub.Subscribe(nil, rec.cb)
	require.Eventually(t, func() bool { _, n := rec.last(); return n == 1 }, time.Second, 5*time.Millisecond)

	unsub()
	unsub()
	require.Equal(t, 0, hub.Len())

	o := models.Order{ID: "x", Status: models.StatusDraft}
	hub.Notify(nil, &o)
	time.Sleep(20 * time.Millisecond)
	_, n := rec.last()
	require.Equal(t, 1, n)
}

func TestHub_SourceErrorSkipsPush(t *testing.T) {
	src := &fakeSource{err: errors.New("db down")}
	hub := watch.NewHub(src.load)

	rec := &recorder{}
	hub.Subscribe(nil, rec.cb)
	time.Sleep(20 * time.Millisecond)
	_, n := rec.last()
	require.Zero(t, n)

	hub.Close()
	hub.Close()
	require.Equal(t, 0, hub.Len())
}

func TestHub_UnsubscribeAfterClose(t *testing.T) {
	src := &fakeSource{}
	h := watch.NewHub(src.load)
	rec := &recorder{}

	unsub := h.Subscribe(models.Any, rec.cb)
	h.Close()

	require.NotPanics(t, unsub)
	require.NotPanics(t, unsub)
	require.Equal(t, 0, h.Len())
}

func TestHub_SubscribeAfterClose(t *testing.T) {
	h := watch.NewHub((&fakeSource{}).load)
	h.Close()

	unsub := h.Subscribe(models.Any, (&recorder{}).cb)
	require.NotPanics(t, unsub)
	require.Equal(t, 0, h.Len())
}
