package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"mk-orders/internal/lifecycle"
	"mk-orders/internal/models"
)

type Store interface {
	Saver
	GetOrder(ctx context.Context, id string) (models.Order, error)
}

// Registry hands out one Draft per order id for the live edit API.
type Registry struct {
	store  Store
	delay  time.Duration
	policy lifecycle.Policy

	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewRegistry(store Store, delay time.Duration, policy lifecycle.Policy) *Registry {
	return &Registry{
		store:  store,
		delay:  delay,
		policy: policy,
		drafts: make(map[string]*Draft),
	}
}

// Open returns the session for id, loading the order when none is open.
func (r *Registry) Open(ctx context.Context, id string) (*Draft, error) {
	r.mu.Lock()
	if d, ok := r.drafts[id]; ok {
		r.mu.Unlock()
		return d, nil
	}
	r.mu.Unlock()

	o, err := r.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	editable := o.Status == models.StatusDraft || (r.policy.EditablePending && o.Status == models.StatusPending)
	if !editable {
		return nil, &lifecycle.StateError{From: o.Status, Trigger: lifecycle.TriggerEditItems}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.drafts[id]; ok {
		return d, nil
	}
	d := NewDraft(id, o.Items, r.store, r.delay, WithErrorHandler(func(err error) {
		logrus.WithError(err).WithField("id", id).Warn("live edit session dropped after failed save")
		r.Drop(id)
	}))
	r.drafts[id] = d
	return d, nil
}

func (r *Registry) Lookup(id string) (*Draft, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[id]
	return d, ok
}

// Drop closes and forgets the session for id.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	d, ok := r.drafts[id]
	delete(r.drafts, id)
	r.mu.Unlock()
	if ok {
		d.Close()
	}
}

// FlushAll writes every open session; used on shutdown.
func (r *Registry) FlushAll(ctx context.Context) error {
	r.mu.Lock()
	drafts := make([]*Draft, 0, len(r.drafts))
	for _, d := range r.drafts {
		drafts = append(drafts, d)
	}
	r.mu.Unlock()

	var firstErr error
	for _, d := range drafts {
		if err := d.Flush(ctx); err != nil {
			logrus.WithError(err).WithField("id", d.ID()).Error("flush live edit session")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}
