package aggregate_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mk-orders/internal/aggregate"
	"mk-orders/internal/models"
	"mk-orders/internal/repository/watch"
)

var t0 = time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time { return models.Stamp(t0.Add(d)) }

func TestCountsByStatus_MergesProcessingIntoAccepted(t *testing.T) {
	orders := []models.Order{
		{Status: models.StatusPending},
		{Status: models.StatusAccepted},
		{Status: models.StatusProcessing},
		{Status: models.StatusCompleted},
		{Status: models.StatusShipped},
		{Status: models.StatusShipped},
		{Status: "bogus"},
	}
	require.Equal(t, aggregate.StatusCounts{Pending: 1, Accepted: 2, Completed: 1, Shipped: 2}, aggregate.CountsByStatus(orders))
}

func TestAverageCycleTimeHours_ExcludesIncomplete(t *testing.T) {
	orders := []models.Order{
		{Timestamps: models.Timestamps{Accepted: at(0), Completed: at(time.Hour)}},
		{Timestamps: models.Timestamps{Accepted: at(0), Completed: at(3 * time.Hour)}},
		{Timestamps: models.Timestamps{Accepted: at(0)}},
	}
	ct := aggregate.AverageCycleTimeHours(orders)
	require.True(t, ct.Valid)
	require.InDelta(t, 2.0, ct.Hours, 1e-9)
	require.Equal(t, "2.0", ct.String())
}

func TestAverageCycleTimeHours_NoEligibleOrders(t *testing.T) {
	ct := aggregate.AverageCycleTimeHours([]models.Order{
		{Timestamps: models.Timestamps{Completed: at(0)}},
		{Timestamps: models.Timestamps{Accepted: at(time.Hour), Completed: at(0)}},
	})
	require.False(t, ct.Valid)
	require.Equal(t, "N/A", ct.String())

	raw, err := json.Marshal(ct)
	require.NoError(t, err)
	require.JSONEq(t, `"N/A"`, string(raw))

	require.False(t, aggregate.AverageCycleTimeHours(nil).Valid)
}

func TestPercentComplete(t *testing.T) {
	cases := []struct {
		name  string
		items models.Lines
		want  int
	}{
		{"empty", nil, 0},
		{"no progress", models.Lines{{Key: "A|B|C|S", Qty: 4}}, 0},
		{"half", models.Lines{{Key: "A|B|C|S", Qty: 2, Completed: 1}, {Key: "A|B|C|M", Qty: 2, Completed: 1}}, 50},
		{"rounded", models.Lines{{Key: "A|B|C|S", Qty: 3, Completed: 2}}, 67},
		{"over-packed caps at 100", models.Lines{{Key: "A|B|C|S", Qty: 2, Completed: 5}}, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, aggregate.PercentComplete(models.Order{Items: c.items}))
		})
	}
}

func TestTimelineEvents(t *testing.T) {
	orders := []models.Order{
		{ID: "b", Timestamps: models.Timestamps{Created: at(time.Hour), Updated: at(5 * time.Hour)}},
		{ID: "a", Timestamps: models.Timestamps{Created: at(0), Submitted: at(2 * time.Hour), Shipped: at(4 * time.Hour)}},
		{ID: "c"},
	}

	events := aggregate.TimelineEvents(orders)
	require.Len(t, events, 4)
	var got []string
	for _, e := range events {
		got = append(got, e.OrderID+":"+e.Event)
	}
	require.Equal(t, []string{"a:created", "b:created", "a:submitted", "a:shipped"}, got)

	latest := aggregate.Latest(events, 2)
	require.Equal(t, "shipped", latest[0].Event)
	require.Len(t, latest, 2)
	require.Len(t, aggregate.Latest(events, 0), 4)
}

func TestSortForTableAndFinished(t *testing.T) {
	early, late := t0, t0.AddDate(0, 0, 3)
	orders := []models.Order{
		{ID: "s", Status: models.StatusShipped},
		{ID: "p2", Status: models.StatusPending, Meta: models.Meta{ShipDate: &late}},
		{ID: "x", Status: models.StatusProcessing},
		{ID: "p1", Status: models.StatusPending, Meta: models.Meta{ShipDate: &early}},
		{ID: "d", Status: models.StatusDraft},
	}
	aggregate.SortForTable(orders)
	var ids []string
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	require.Equal(t, []string{"d", "p1", "p2", "x", "s"}, ids)

	finished := []models.Order{
		{ID: "none"},
		{ID: "old", Timestamps: models.Timestamps{Completed: at(0)}},
		{ID: "new", Timestamps: models.Timestamps{Completed: at(time.Hour)}},
	}
	aggregate.SortFinished(finished)
	require.Equal(t, "new", finished[0].ID)
	require.Equal(t, "none", finished[2].ID)
}

func TestColourClass_IsStable(t *testing.T) {
	require.Equal(t, "order-color-red", aggregate.ColourClass(""))
	a := aggregate.ColourClass("3f2a9c1e-order")
	require.Equal(t, a, aggregate.ColourClass("3f2a9c1e-order"))
	require.Contains(t, a, "order-color-")
}

type hubStub struct {
	mu sync.Mutex
	cb watch.Callback
}

func (h *hubStub) Subscribe(_ models.Predicate, cb watch.Callback) func() {
	h.mu.Lock()
	h.cb = cb
	h.mu.Unlock()
	return func() {}
}

func (h *hubStub) push(orders []models.Order) {
	h.mu.Lock()
	cb := h.cb
	h.mu.Unlock()
	cb(orders)
}

func TestLive_RecomputesOnPush(t *testing.T) {
	hub := &hubStub{}
	live := aggregate.NewLive(hub)
	defer live.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, live.Wait(ctx), context.DeadlineExceeded)

	hub.push([]models.Order{
		{ID: "a", Status: models.StatusPending, Items: models.Lines{{Key: "A|B|C|S", Qty: 3}}, Timestamps: models.Timestamps{Created: at(0)}},
	})
	require.NoError(t, live.Wait(context.Background()))
	d := live.Dashboard()
	require.Equal(t, 1, d.Counts.Pending)
	require.Equal(t, 3, d.TotalItems)
	require.Equal(t, 1, d.TotalOrders)
	require.Len(t, live.Timeline(10), 1)

	hub.push(nil)
	require.Zero(t, live.Dashboard().TotalOrders)
	require.Empty(t, live.Timeline(10))
}
