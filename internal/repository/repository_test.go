package repository_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mk-orders/internal/lifecycle"
	"mk-orders/internal/models"
	"mk-orders/internal/repository"
	"mk-orders/internal/repository/cache"
	"mk-orders/internal/repository/memory"
)

type persistenceStub struct {
	CreateFn func(ctx context.Context, o models.Order) error
	GetFn    func(ctx context.Context, id string) (models.Order, error)
	GetAllFn func(ctx context.Context) ([]models.Order, error)
	UpdateFn func(ctx context.Context, id string, p models.OrderPatch) (models.Order, models.Order, error)
	DeleteFn func(ctx context.Context, id string, statuses ...models.Status) error
}

func (s *persistenceStub) Create(ctx context.Context, o models.Order) error { return s.CreateFn(ctx, o) }
func (s *persistenceStub) Get(ctx context.Context, id string) (models.Order, error) {
	return s.GetFn(ctx, id)
}
func (s *persistenceStub) GetAll(ctx context.Context) ([]models.Order, error) { return s.GetAllFn(ctx) }
func (s *persistenceStub) Update(ctx context.Context, id string, p models.OrderPatch) (models.Order, models.Order, error) {
	return s.UpdateFn(ctx, id, p)
}
func (s *persistenceStub) Delete(ctx context.Context, id string, statuses ...models.Status) error {
	return s.DeleteFn(ctx, id, statuses...)
}

func newMemory(t *testing.T) *repository.Repository {
	t.Helper()
	n := 0
	r := repository.New(
		memory.NewOrderMemory(cache.NewShardedCache[models.Order](cache.WithShards(4))),
		cache.NewOrderCache(cache.NewCache[models.Order]()),
		repository.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	t.Cleanup(r.Close)
	return r
}

func TestRepository_CreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	r := newMemory(t)

	id, err := r.Create(ctx, models.Order{
		Status: models.StatusDraft,
		Items:  models.Lines{{Key: "A|B|C|S", Qty: 2}, {Key: "A|B|C|M", Qty: 0}},
	})
	require.NoError(t, err)
	require.Equal(t, "id-1", id)

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 2, got.Total)
	require.Len(t, got.Items, 1, "zero lines are never stored")

	items := models.Lines{{Key: "A|B|C|S", Qty: 1}, {Key: "A|B|C|L", Qty: -1}}
	updated, err := r.Update(ctx, id, models.OrderPatch{Items: &items})
	require.NoError(t, err)
	require.Equal(t, 1, updated.Total)
	require.Len(t, updated.Items, 1)

	require.NoError(t, r.Delete(ctx, id))
	_, err = r.Get(ctx, id)
	require.ErrorIs(t, err, lifecycle.ErrNotFound)

	_, err = r.Update(ctx, id, models.OrderPatch{})
	require.ErrorIs(t, err, lifecycle.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, id), lifecycle.ErrNotFound)
}

func TestRepository_ListFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	r := newMemory(t)

	late := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	early := late.AddDate(0, -1, 0)

	_, err := r.Create(ctx, models.Order{Status: models.StatusPending, Meta: models.Meta{ShipDate: &late}})
	require.NoError(t, err)
	_, err = r.Create(ctx, models.Order{Status: models.StatusAccepted, Meta: models.Meta{ShipDate: &early}})
	require.NoError(t, err)
	_, err = r.Create(ctx, models.Order{Status: models.StatusShipped})
	require.NoError(t, err)

	open, err := r.List(ctx, models.InStatus(models.StatusPending, models.StatusAccepted))
	require.NoError(t, err)
	require.Len(t, open, 2)
	require.Equal(t, models.StatusAccepted, open[0].Status)

	all, err := r.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestRepository_SubscribePushesMatchingSet(t *testing.T) {
	ctx := context.Background()
	r := newMemory(t)

	var (
		mu    sync.Mutex
		last  []models.Order
		count int
	)
	unsub := r.Subscribe(models.InStatus(models.DraftAndPending...), func(orders []models.Order) {
		mu.Lock()
		last, count = orders, count+1
		mu.Unlock()
	})
	defer unsub()

	snapshot := func() ([]models.Order, int) {
		mu.Lock()
		defer mu.Unlock()
		return last, count
	}

	require.Eventually(t, func() bool { _, n := snapshot(); return n >= 1 }, time.Second, 5*time.Millisecond)

	id, err := r.Create(ctx, models.Order{Status: models.StatusDraft})
	require.NoError(t, err)
	require.Eventually(t, func() bool { got, _ := snapshot(); return len(got) == 1 }, time.Second, 5*time.Millisecond)

	accepted := models.StatusAccepted
	_, err = r.Update(ctx, id, models.OrderPatch{Status: &accepted})
	require.NoError(t, err)
	require.Eventually(t, func() bool { got, _ := snapshot(); return len(got) == 0 }, time.Second, 5*time.Millisecond)
}

func TestRepository_DeleteDuringUpdateStaysDeleted(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewOrderMemory(cache.NewShardedCache[models.Order](cache.WithShards(4)))
	committed := make(chan struct{})
	release := make(chan struct{})

	stub := &persistenceStub{
		CreateFn: mem.Create,
		GetFn:    mem.Get,
		GetAllFn: mem.GetAll,
		UpdateFn: func(ctx context.Context, id string, p models.OrderPatch) (models.Order, models.Order, error) {
			before, after, err := mem.Update(ctx, id, p)
			close(committed)
			<-release
			return before, after, err
		},
		DeleteFn: mem.Delete,
	}
	r := repository.New(stub, cache.NewOrderCache(cache.NewCache[models.Order]()))
	defer r.Close()

	id, err := r.Create(ctx, models.Order{Status: models.StatusDraft, Items: models.Lines{{Key: "A|B|C|S", Qty: 1}}})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		items := models.Lines{{Key: "A|B|C|S", Qty: 4}}
		_, err := r.Update(ctx, id, models.OrderPatch{Items: &items})
		done <- err
	}()

	<-committed
	require.NoError(t, r.Delete(ctx, id))
	close(release)
	require.NoError(t, <-done)

	_, err = r.Get(ctx, id)
	require.ErrorIs(t, err, lifecycle.ErrNotFound)
}

func TestRepository_DeleteOnlyInStatuses(t *testing.T) {
	ctx := context.Background()
	r := newMemory(t)

	id, err := r.Create(ctx, models.Order{Status: models.StatusAccepted})
	require.NoError(t, err)

	err = r.Delete(ctx, id, models.DraftAndPending...)
	require.ErrorIs(t, err, lifecycle.ErrInvalidState)
	var se *lifecycle.StateError
	require.ErrorAs(t, err, &se)
	require.Equal(t, models.StatusAccepted, se.From)

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, got.Status)

	require.ErrorIs(t, r.Delete(ctx, "missing", models.DraftAndPending...), lifecycle.ErrNotFound)
	require.NoError(t, r.Delete(ctx, id))
}

func TestRepository_ClassifiesPersistenceErrors(t *testing.T) {
	ctx := context.Background()
	down := errors.New("connection refused")

	stub := &persistenceStub{
		CreateFn: func(context.Context, models.Order) error { return down },
		GetFn: func(context.Context, string) (models.Order, error) {
			return models.Order{}, cache.NewErrorHandler(errors.New("missing"), http.StatusNotFound)
		},
		GetAllFn: func(context.Context) ([]models.Order, error) { return nil, down },
		UpdateFn: func(context.Context, string, models.OrderPatch) (models.Order, models.Order, error) {
			return models.Order{}, models.Order{}, down
		},
		DeleteFn: func(context.Context, string, ...models.Status) error { return down },
	}
	r := repository.New(stub, cache.NewOrderCache(cache.NewCache[models.Order]()))
	defer r.Close()

	_, err := r.Create(ctx, models.Order{})
	require.ErrorIs(t, err, lifecycle.ErrStoreUnavailable)

	_, err = r.Get(ctx, "x")
	require.ErrorIs(t, err, lifecycle.ErrNotFound)

	_, err = r.List(ctx, nil)
	require.ErrorIs(t, err, lifecycle.ErrStoreUnavailable)

	_, err = r.Update(ctx, "x", models.OrderPatch{})
	require.ErrorIs(t, err, lifecycle.ErrStoreUnavailable)

	require.ErrorIs(t, r.Delete(ctx, "x"), lifecycle.ErrStoreUnavailable)

	_, err = r.Warm(ctx)
	require.ErrorIs(t, err, lifecycle.ErrStoreUnavailable)
}

func TestRepository_WarmSkipsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	stub := &persistenceStub{
		GetAllFn: func(context.Context) ([]models.Order, error) {
			return []models.Order{{ID: "ok", Status: models.StatusDraft}, {ID: "bad", Status: "archived"}}, nil
		},
		GetFn: func(_ context.Context, id string) (models.Order, error) {
			return models.Order{}, cache.NewErrorHandler(errors.New(id), http.StatusNotFound)
		},
	}
	c := cache.NewOrderCache(cache.NewCache[models.Order]())
	r := repository.New(stub, c)
	defer r.Close()

	n, err := r.Warm(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 1, c.Len())

	got, err := r.Get(ctx, "ok")
	require.NoError(t, err)
	require.Equal(t, models.StatusDraft, got.Status)
}
