package aggregate

import (
	"context"
	"sync"
	"time"

	"mk-orders/internal/models"
	"mk-orders/internal/repository/watch"
)

type Dashboard struct {
	Counts       StatusCounts `json:"counts"`
	AvgCycleTime CycleTime    `json:"avg_cycle_time_hours"`
	TotalItems   int          `json:"total_items"`
	TotalOrders  int          `json:"total_orders"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func Build(orders []models.Order, now time.Time) Dashboard {
	return Dashboard{
		Counts:       CountsByStatus(orders),
		AvgCycleTime: AverageCycleTimeHours(orders),
		TotalItems:   TotalItems(orders),
		TotalOrders:  len(orders),
		UpdatedAt:    now,
	}
}

type Subscriber interface {
	Subscribe(pred models.Predicate, cb watch.Callback) func()
}

// Live keeps a dashboard and activity feed recomputed on every push from the store.
type Live struct {
	mu        sync.RWMutex
	dashboard Dashboard
	timeline  []TimelineEvent

	ready     chan struct{}
	readyOnce sync.Once
	stop      func()
	now       func() time.Time
}

func NewLive(s Subscriber) *Live {
	l := &Live{
		ready: make(chan struct{}),
		now:   func() time.Time { return time.Now().UTC() },
	}
	l.stop = s.Subscribe(models.Any, l.update)
	return l
}

func (l *Live) update(orders []models.Order) {
	d := Build(orders, l.now())
	tl := TimelineEvents(orders)

	l.mu.Lock()
	l.dashboard, l.timeline = d, tl
	l.mu.Unlock()

	l.readyOnce.Do(func() { close(l.ready) })
}

// Wait blocks until the first push has been applied.
func (l *Live) Wait(ctx context.Context) error {
	select {
	case <-l.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Live) Dashboard() Dashboard {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dashboard
}

// Timeline returns up to n of the most recent events, newest first.
func (l *Live) Timeline(n int) []TimelineEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Latest(l.timeline, n)
}

func (l *Live) Close() {
	if l.stop != nil {
		l.stop()
	}
}
