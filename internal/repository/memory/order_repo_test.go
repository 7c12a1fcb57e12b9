package memory_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"mk-orders/internal/lifecycle"
	"mk-orders/internal/models"
	"mk-orders/internal/repository/cache"
	"mk-orders/internal/repository/memory"
)

func newRepo() *memory.OrderMemoryRepo {
	return memory.NewOrderMemory(cache.NewShardedCache[models.Order]())
}

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	var eh cache.ErrorHandler
	require.ErrorAs(t, err, &eh)
	require.Equal(t, code, eh.StatusCode)
}

func TestOrderMemory_CRUD(t *testing.T) {
	ctx := context.Background()
	r := newRepo()

	o := models.Order{ID: "o1", Status: models.StatusDraft, Items: models.Lines{}}
	require.NoError(t, r.Create(ctx, o))
	requireStatus(t, r.Create(ctx, o), http.StatusConflict)

	items := models.Lines{{Key: "A|B|C|S", Qty: 3}}
	before, after, err := r.Update(ctx, "o1", models.OrderPatch{Items: &items})
	require.NoError(t, err)
	require.Zero(t, before.Total)
	require.Equal(t, 3, after.Total)

	got, err := r.Get(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, after, got)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, r.Delete(ctx, "o1"))
	_, err = r.Get(ctx, "o1")
	requireStatus(t, err, http.StatusNotFound)
	requireStatus(t, r.Delete(ctx, "o1"), http.StatusNotFound)

	_, _, err = r.Update(ctx, "o1", models.OrderPatch{})
	requireStatus(t, err, http.StatusNotFound)
}

func TestOrderMemory_DeleteOnlyInStatuses(t *testing.T) {
	ctx := context.Background()
	r := newRepo()
	require.NoError(t, r.Create(ctx, models.Order{ID: "o1", Status: models.StatusAccepted}))

	err := r.Delete(ctx, "o1", models.StatusDraft, models.StatusPending)
	var se *lifecycle.StateError
	require.ErrorAs(t, err, &se)
	require.Equal(t, models.StatusAccepted, se.From)
	require.Equal(t, lifecycle.TriggerDelete, se.Trigger)

	_, err = r.Get(ctx, "o1")
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, "o1", models.StatusAccepted))
	requireStatus(t, r.Delete(ctx, "o1", models.StatusAccepted), http.StatusNotFound)
}

func TestOrderMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRepo().Get(ctx, "x")
	require.ErrorIs(t, err, context.Canceled)
}
