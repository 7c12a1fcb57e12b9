package memory

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"mk-orders/internal/lifecycle"
	"mk-orders/internal/models"
	"mk-orders/internal/repository/cache"
)

// OrderMemoryRepo keeps orders in a sharded in-process map. It is used when no
// database is configured and in tests.
type OrderMemoryRepo struct {
	kv cache.KV[models.Order]
}

func NewOrderMemory(kv cache.KV[models.Order]) *OrderMemoryRepo {
	return &OrderMemoryRepo{kv: kv}
}

func notFound(id string) error {
	return cache.NewErrorHandler(fmt.Errorf("order %s not found", id), http.StatusNotFound)
}

func (r *OrderMemoryRepo) Create(ctx context.Context, o models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, stored := r.kv.Update(o.ID, func(_ models.Order, exists bool) (models.Order, bool) {
		return o.Clone(), !exists
	})
	if !stored {
		return cache.NewErrorHandler(fmt.Errorf("order %s already exists", o.ID), http.StatusConflict)
	}
	return nil
}

func (r *OrderMemoryRepo) Get(ctx context.Context, id string) (models.Order, error) {
	if err := ctx.Err(); err != nil {
		return models.Order{}, err
	}
	o, ok := r.kv.Get(id)
	if !ok {
		return models.Order{}, notFound(id)
	}
	return o.Clone(), nil
}

func (r *OrderMemoryRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := r.kv.Snapshot()
	out := make([]models.Order, 0, len(snap))
	for _, o := range snap {
		out = append(out, o.Clone())
	}
	return out, nil
}

// Update applies patch under the key lock and returns the order before and
// after the change.
func (r *OrderMemoryRepo) Update(ctx context.Context, id string, patch models.OrderPatch) (models.Order, models.Order, error) {
	if err := ctx.Err(); err != nil {
		return models.Order{}, models.Order{}, err
	}
	var before models.Order
	after, stored := r.kv.Update(id, func(cur models.Order, ok bool) (models.Order, bool) {
		if !ok {
			return cur, false
		}
		before = cur.Clone()
		return cur.Apply(patch), true
	})
	if !stored {
		return models.Order{}, models.Order{}, notFound(id)
	}
	return before, after.Clone(), nil
}

// Delete removes the order. When statuses are given the order is only removed
// while its status is one of them.
func (r *OrderMemoryRepo) Delete(ctx context.Context, id string, statuses ...models.Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	allowed := func(o models.Order) bool {
		return len(statuses) == 0 || slices.Contains(statuses, o.Status)
	}
	cur, ok := r.kv.DeleteFunc(id, allowed)
	if !ok {
		return notFound(id)
	}
	if !allowed(cur) {
		return &lifecycle.StateError{From: cur.Status, Trigger: lifecycle.TriggerDelete}
	}
	return nil
}
