package lifecycle

import (
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"mk-orders/internal/itemset"
	"mk-orders/internal/models"
)

// Policy holds the caller-controlled parts of the lifecycle.
type Policy struct {
	// RequireShipping makes ship method and ship date mandatory on create.
	RequireShipping bool
	// EditablePending allows item edits after submit, until the order is accepted.
	EditablePending bool
}

// Machine computes the patch each lifecycle trigger applies to an order.
// It never touches storage; callers write the returned patch.
type Machine struct {
	policy Policy
	now    func() time.Time
	v      *validator.Validate
}

type Option func(*Machine)

func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

func NewMachine(policy Policy, opts ...Option) *Machine {
	m := &Machine{
		policy: policy,
		now:    func() time.Time { return time.Now().UTC() },
		v:      validator.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) Policy() Policy { return m.policy }

// Can reports whether trigger may fire from the given status.
func (m *Machine) Can(from models.Status, t Trigger) bool {
	if t == TriggerEditItems && m.policy.EditablePending && from == models.StatusPending {
		return true
	}
	allowed, ok := transitions[t]
	return ok && slices.Contains(allowed, from)
}

// From lists the statuses t may be applied in under the machine's policy.
func (m *Machine) From(t Trigger) []models.Status {
	from := slices.Clone(transitions[t])
	if t == TriggerEditItems && m.policy.EditablePending {
		from = append(from, models.StatusPending)
	}
	return from
}

func (m *Machine) check(o models.Order, t Trigger) error {
	if !m.Can(o.Status, t) {
		return &StateError{From: o.Status, Trigger: t}
	}
	return nil
}

func DefaultName(orderDate time.Time) string {
	return "Order " + orderDate.Format("2006-01-02")
}

// Draft builds a new draft order from meta. The id is left to the store.
func (m *Machine) Draft(meta models.Meta) (models.Order, error) {
	now := m.now()

	meta.Name = strings.TrimSpace(meta.Name)
	meta.Carrier = strings.TrimSpace(meta.Carrier)
	if err := m.v.Struct(meta); err != nil {
		return models.Order{}, ValidationError(err)
	}
	if m.policy.RequireShipping {
		if meta.ShipMethod == "" {
			return models.Order{}, validationf("ship method is required")
		}
		if meta.ShipDate == nil || meta.ShipDate.IsZero() {
			return models.Order{}, validationf("ship date is required")
		}
	}
	if meta.OrderDate.IsZero() {
		meta.OrderDate = now
	}
	if meta.Name == "" {
		meta.Name = DefaultName(meta.OrderDate)
	}

	return models.Order{
		Status:     models.StatusDraft,
		Meta:       meta,
		Items:      models.Lines{},
		Total:      0,
		History:    models.History{},
		Timestamps: models.Timestamps{Created: models.Stamp(now)},
	}, nil
}

func (m *Machine) Submit(o models.Order) (models.OrderPatch, error) {
	if err := m.check(o, TriggerSubmit); err != nil {
		return models.OrderPatch{}, err
	}
	if itemset.Normalize(o.Items).Total() <= 0 {
		return models.OrderPatch{}, validationf("cannot submit an order without items")
	}
	return models.OrderPatch{
		Status:     statusPtr(models.StatusPending),
		Timestamps: models.Timestamps{Submitted: models.Stamp(m.now())},
	}, nil
}

func (m *Machine) Accept(o models.Order) (models.OrderPatch, error) {
	if err := m.check(o, TriggerAccept); err != nil {
		return models.OrderPatch{}, err
	}
	now := m.now()
	return models.OrderPatch{
		Status:     statusPtr(models.StatusAccepted),
		Timestamps: models.Timestamps{Accepted: models.Stamp(now)},
		History:    []models.HistoryEntry{{Event: models.EventAccepted, At: now}},
	}, nil
}

func (m *Machine) StartProcessing(o models.Order) (models.OrderPatch, error) {
	if err := m.check(o, TriggerProcess); err != nil {
		return models.OrderPatch{}, err
	}
	return models.OrderPatch{Status: statusPtr(models.StatusProcessing)}, nil
}

func (m *Machine) Complete(o models.Order) (models.OrderPatch, error) {
	if err := m.check(o, TriggerComplete); err != nil {
		return models.OrderPatch{}, err
	}
	now := m.now()
	return models.OrderPatch{
		Status:     statusPtr(models.StatusCompleted),
		Timestamps: models.Timestamps{Completed: models.Stamp(now)},
		History:    []models.HistoryEntry{{Event: models.EventCompleted, At: now}},
	}, nil
}

// Shipment is entered by staff; ShippedDate is taken as given.
type Shipment struct {
	Carrier     string    `json:"carrier"      validate:"required,max=120"`
	ShippedDate time.Time `json:"shipped_date"`
}

func (m *Machine) Ship(o models.Order, s Shipment) (models.OrderPatch, error) {
	if err := m.check(o, TriggerShip); err != nil {
		return models.OrderPatch{}, err
	}
	s.Carrier = strings.TrimSpace(s.Carrier)
	if err := m.v.Struct(s); err != nil {
		return models.OrderPatch{}, ValidationError(err)
	}
	if s.ShippedDate.IsZero() {
		return models.OrderPatch{}, validationf("shipped date is required")
	}
	return models.OrderPatch{
		Status:     statusPtr(models.StatusShipped),
		Meta:       models.MetaPatch{Carrier: &s.Carrier},
		Timestamps: models.Timestamps{Shipped: models.Stamp(s.ShippedDate)},
		History: []models.HistoryEntry{{
			Event:   models.EventShipped,
			At:      s.ShippedDate,
			Carrier: s.Carrier,
		}},
	}, nil
}

// Delete only checks the guard; removal is up to the store.
func (m *Machine) Delete(o models.Order) error {
	return m.check(o, TriggerDelete)
}

// EditItems replaces the item set. items may be in any shape itemset accepts.
func (m *Machine) EditItems(o models.Order, items any) (models.OrderPatch, error) {
	if err := m.check(o, TriggerEditItems); err != nil {
		return models.OrderPatch{}, err
	}
	lines := itemset.Merge(itemset.Normalize(items))
	return models.OrderPatch{
		Items:      &lines,
		Timestamps: models.Timestamps{Updated: models.Stamp(m.now())},
	}, nil
}

// RecordProgress sets how many units of one line have been packed.
func (m *Machine) RecordProgress(o models.Order, key string, completed int) (models.OrderPatch, error) {
	if err := m.check(o, TriggerRecordProgress); err != nil {
		return models.OrderPatch{}, err
	}
	lines := o.Items.Clone()
	i, ok := lines.Find(key)
	if !ok {
		return models.OrderPatch{}, validationf("order has no line %q", key)
	}
	lines[i].Completed = max(0, min(completed, lines[i].Qty))
	return models.OrderPatch{
		Items:      &lines,
		Timestamps: models.Timestamps{Updated: models.Stamp(m.now())},
	}, nil
}

func statusPtr(s models.Status) *models.Status { return &s }
