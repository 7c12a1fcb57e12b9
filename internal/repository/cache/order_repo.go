package cache

import (
	"fmt"
	"net/http"

	"mk-orders/internal/models"
)

// OrderCacheRepo is the read-through cache in front of order persistence.
// Stored values are clones so callers cannot mutate cached orders.
type OrderCacheRepo struct {
	cch KV[models.Order]
}

func NewOrderCache(cch KV[models.Order]) *OrderCacheRepo {
	return &OrderCacheRepo{cch: cch}
}

func (o *OrderCacheRepo) PutOrder(ord models.Order) {
	o.cch.Put(ord.ID, ord.Clone())
}

func (o *OrderCacheRepo) GetOrder(id string) (models.Order, error) {
	v, ok := o.cch.Get(id)
	if !ok {
		return models.Order{}, NewErrorHandler(fmt.Errorf("order %s not found", id), http.StatusNotFound)
	}
	return v.Clone(), nil
}

func (o *OrderCacheRepo) GetAllOrders() []models.Order {
	snap := o.cch.Snapshot()
	orders := make([]models.Order, 0, len(snap))
	for _, v := range snap {
		orders = append(orders, v.Clone())
	}
	return orders
}

func (o *OrderCacheRepo) DeleteOrder(id string) {
	o.cch.Delete(id)
}

func (o *OrderCacheRepo) Len() int {
	return o.cch.Len()
}
