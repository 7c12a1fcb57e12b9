// Package aggregate derives dashboard figures from a set of orders. Every
// function is pure and treats missing or malformed fields as absent data.
package aggregate

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"time"

	"mk-orders/internal/itemset"
	"mk-orders/internal/models"
)

// StatusCounts are the dashboard tiles. Processing orders count as accepted.
type StatusCounts struct {
	Draft     int `json:"draft"`
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Completed int `json:"completed"`
	Shipped   int `json:"shipped"`
}

func CountsByStatus(orders []models.Order) StatusCounts {
	var c StatusCounts
	for _, o := range orders {
		switch o.Status {
		case models.StatusDraft:
			c.Draft++
		case models.StatusPending:
			c.Pending++
		case models.StatusAccepted, models.StatusProcessing:
			c.Accepted++
		case models.StatusCompleted:
			c.Completed++
		case models.StatusShipped:
			c.Shipped++
		}
	}
	return c
}

// CycleTime is a mean duration in hours. The zero value means there was no
// eligible order and renders as "N/A".
type CycleTime struct {
	Hours float64
	Valid bool
}

const NotAvailable = "N/A"

func (c CycleTime) String() string {
	if !c.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(c.Hours, 'f', 1, 64)
}

func (c CycleTime) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(math.Round(c.Hours*10) / 10)
}

// AverageCycleTimeHours averages completed minus accepted over orders that have
// both stamps. Orders missing either stamp, or with completion before
// acceptance, are left out.
func AverageCycleTimeHours(orders []models.Order) CycleTime {
	var (
		sum float64
		n   int
	)
	for _, o := range orders {
		acc, done := o.Timestamps.Accepted, o.Timestamps.Completed
		if acc == nil || done == nil || acc.IsZero() || done.IsZero() {
			continue
		}
		d := done.Sub(*acc)
		if d < 0 {
			continue
		}
		sum += d.Hours()
		n++
	}
	if n == 0 {
		return CycleTime{}
	}
	return CycleTime{Hours: sum / float64(n), Valid: true}
}

// PercentComplete is the packed share of an order, 0 to 100. Per line the
// packed count is capped at the ordered count.
func PercentComplete(o models.Order) int {
	ordered, packed := 0, 0
	for _, ln := range itemset.Normalize(o.Items) {
		ordered += ln.Qty
		packed += max(0, min(ln.Completed, ln.Qty))
	}
	if ordered == 0 || packed == 0 {
		return 0
	}
	return int(math.Round(float64(packed) / float64(ordered) * 100))
}

func TotalItems(orders []models.Order) int {
	total := 0
	for _, o := range orders {
		total += itemset.Normalize(o.Items).Total()
	}
	return total
}

type TimelineEvent struct {
	OrderID string    `json:"order_id"`
	Name    string    `json:"name"`
	Event   string    `json:"event"`
	At      time.Time `json:"at"`
}

// TimelineEvents flattens the lifecycle stamps of every order into one
// chronological feed, one event per populated stamp.
func TimelineEvents(orders []models.Order) []TimelineEvent {
	events := make([]TimelineEvent, 0, len(orders)*2)
	for _, o := range orders {
		o.Timestamps.Lifecycle(func(name string, at time.Time) {
			events = append(events, TimelineEvent{OrderID: o.ID, Name: o.Meta.Name, Event: name, At: at})
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At.Before(events[j].At)
	})
	return events
}

// Latest returns the n most recent events, newest first.
func Latest(events []TimelineEvent, n int) []TimelineEvent {
	if n <= 0 || n > len(events) {
		n = len(events)
	}
	out := make([]TimelineEvent, 0, n)
	for i := len(events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, events[i])
	}
	return out
}

// SortForTable orders by status rank, then ship date.
func SortForTable(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		ri, rj := orders[i].Status.Rank(), orders[j].Status.Rank()
		if ri != rj {
			return ri < rj
		}
		a, b := orders[i].ShipDateOrZero(), orders[j].ShipDateOrZero()
		if !a.Equal(b) {
			return a.Before(b)
		}
		return orders[i].ID < orders[j].ID
	})
}

// SortFinished puts the most recently completed orders first and orders
// without a completed stamp last.
func SortFinished(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i].Timestamps.Completed, orders[j].Timestamps.Completed
		switch {
		case a == nil && b == nil:
			return orders[i].ID < orders[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})
}

var colourClasses = []string{
	"order-color-red",
	"order-color-blue",
	"order-color-green",
	"order-color-orange",
	"order-color-purple",
	"order-color-teal",
	"order-color-pink",
	"order-color-brown",
	"order-color-cyan",
	"order-color-lime",
}

// ColourClass picks a stable accent class for an order id.
func ColourClass(id string) string {
	if id == "" {
		return colourClasses[0]
	}
	var h int32
	for _, r := range id {
		h = h*31 + int32(r)
	}
	idx := int(h) % len(colourClasses)
	if idx < 0 {
		idx = -idx
	}
	return colourClasses[idx]
}
