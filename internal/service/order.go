package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"mk-orders/internal/aggregate"
	"mk-orders/internal/itemset"
	"mk-orders/internal/lifecycle"
	"mk-orders/internal/models"
	"mk-orders/internal/repository/watch"
)

func (s *Service) CreateDraft(ctx context.Context, meta models.Meta, items any) (models.Order, error) {
	o, err := s.machine.Draft(meta)
	if err != nil {
		rejected(lifecycle.TriggerCreate, err)
		return models.Order{}, err
	}
	if items != nil {
		patch, err := s.machine.EditItems(o, items)
		if err != nil {
			return models.Order{}, err
		}
		o = o.Apply(patch)
	}

	id, err := s.store.Create(ctx, o)
	if err != nil {
		return models.Order{}, err
	}
	o.ID = id

	logrus.WithFields(logrus.Fields{"id": id, "name": o.Meta.Name}).Info("draft created")
	transitionsTotal.WithLabelValues(string(lifecycle.TriggerCreate), string(models.StatusDraft)).Inc()
	return o, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (models.Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, statuses ...models.Status) ([]models.Order, error) {
	return s.store.List(ctx, models.InStatus(statuses...))
}

func (s *Service) Summary(ctx context.Context, id string) (OrderSummary, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return OrderSummary{}, err
	}
	sum := itemset.Summarize(o.Items)
	return OrderSummary{
		Order:           o,
		TotalItems:      sum.TotalItems,
		TotalLines:      sum.TotalLines,
		PercentComplete: aggregate.PercentComplete(o),
		Variants:        itemset.SortedVariants(itemset.GroupByVariant(o.Items)),
		ColourClass:     aggregate.ColourClass(o.ID),
	}, nil
}

func (s *Service) Review(ctx context.Context, ids ...string) (Review, error) {
	sets := make([]models.Lines, 0, len(ids))
	for _, id := range ids {
		o, err := s.store.Get(ctx, id)
		if err != nil {
			return Review{}, err
		}
		sets = append(sets, o.Items)
	}
	lines := itemset.Merge(sets...)
	sum := itemset.Summarize(lines)
	return Review{
		OrderIDs:   ids,
		Lines:      lines,
		TotalItems: sum.TotalItems,
		TotalLines: sum.TotalLines,
		Variants:   itemset.SortedVariants(itemset.GroupByVariant(lines)),
	}, nil
}

func (s *Service) UpdateItems(ctx context.Context, id string, items any) (models.Order, error) {
	return s.apply(ctx, id, lifecycle.TriggerEditItems, func(o models.Order) (models.OrderPatch, error) {
		return s.machine.EditItems(o, items)
	})
}

func (s *Service) Submit(ctx context.Context, id string) (models.Order, error) {
	return s.apply(ctx, id, lifecycle.TriggerSubmit, s.machine.Submit)
}

func (s *Service) Accept(ctx context.Context, id string) (models.Order, error) {
	return s.apply(ctx, id, lifecycle.TriggerAccept, s.machine.Accept)
}

func (s *Service) StartProcessing(ctx context.Context, id string) (models.Order, error) {
	return s.apply(ctx, id, lifecycle.TriggerProcess, s.machine.StartProcessing)
}

func (s *Service) Complete(ctx context.Context, id string) (models.Order, error) {
	return s.apply(ctx, id, lifecycle.TriggerComplete, s.machine.Complete)
}

func (s *Service) Ship(ctx context.Context, id string, sh lifecycle.Shipment) (models.Order, error) {
	return s.apply(ctx, id, lifecycle.TriggerShip, func(o models.Order) (models.OrderPatch, error) {
		return s.machine.Ship(o, sh)
	})
}

func (s *Service) RecordProgress(ctx context.Context, id, key string, completed int) (models.Order, error) {
	return s.apply(ctx, id, lifecycle.TriggerRecordProgress, func(o models.Order) (models.OrderPatch, error) {
		return s.machine.RecordProgress(o, key, completed)
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.machine.Delete(o); err != nil {
		rejected(lifecycle.TriggerDelete, err)
		logrus.WithError(err).WithField("id", id).Warn("delete rejected")
		return err
	}
	if err := s.store.Delete(ctx, id, s.machine.From(lifecycle.TriggerDelete)...); err != nil {
		if errors.Is(err, lifecycle.ErrInvalidState) {
			rejected(lifecycle.TriggerDelete, err)
			logrus.WithError(err).WithField("id", id).Warn("delete rejected")
		}
		return err
	}
	logrus.WithFields(logrus.Fields{"id": id, "from": o.Status}).Info("order deleted")
	transitionsTotal.WithLabelValues(string(lifecycle.TriggerDelete), "deleted").Inc()
	return nil
}

func (s *Service) Subscribe(pred models.Predicate, cb watch.Callback) func() {
	return s.store.Subscribe(pred, cb)
}

func (s *Service) Dashboard(ctx context.Context) (aggregate.Dashboard, error) {
	if s.live != nil {
		return s.live.Dashboard(), nil
	}
	all, err := s.store.List(ctx, models.Any)
	if err != nil {
		return aggregate.Dashboard{}, err
	}
	return aggregate.Build(all, s.now()), nil
}

func (s *Service) Timeline(ctx context.Context, limit int) ([]aggregate.TimelineEvent, error) {
	if s.live != nil {
		return s.live.Timeline(limit), nil
	}
	all, err := s.store.List(ctx, models.Any)
	if err != nil {
		return nil, err
	}
	return aggregate.Latest(aggregate.TimelineEvents(all), limit), nil
}

// apply loads the order, asks the machine for the patch and stores it. The
// read and the write are separate store calls; see repository.OrderStore.
func (s *Service) apply(ctx context.Context, id string, t lifecycle.Trigger,
	step func(models.Order) (models.OrderPatch, error)) (models.Order, error) {
	cur, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}

	patch, err := step(cur)
	if err != nil {
		rejected(t, err)
		logrus.WithError(err).WithFields(logrus.Fields{
			"id":      id,
			"status":  cur.Status,
			"trigger": t,
		}).Warn("transition rejected")
		return models.Order{}, err
	}

	next, err := s.store.Update(ctx, id, patch)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"id": id, "trigger": t}).Error("store update failed")
		return models.Order{}, err
	}

	if next.Status != cur.Status {
		logrus.WithFields(logrus.Fields{"id": id, "from": cur.Status, "to": next.Status}).Info("order transition")
		transitionsTotal.WithLabelValues(string(t), string(next.Status)).Inc()
		s.publish(ctx, StatusChangedEvent{OrderID: id, From: cur.Status, To: next.Status, At: s.now()})
	}
	return next, nil
}

// publish reports a stored transition. The write already happened, so a
// publish failure is logged and not returned.
func (s *Service) publish(ctx context.Context, ev StatusChangedEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishStatusChanged(ctx, ev); err != nil {
		logrus.WithError(err).WithField("id", ev.OrderID).Error("publish status event")
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, lifecycle.ErrInvalidState):
		return "state"
	case errors.Is(err, lifecycle.ErrValidation):
		return "validation"
	case errors.Is(err, lifecycle.ErrNotFound):
		return "not_found"
	case errors.Is(err, lifecycle.ErrStoreUnavailable):
		return "store"
	default:
		return "other"
	}
}

func rejected(t lifecycle.Trigger, err error) {
	rejectionsTotal.WithLabelValues(string(t), errorKind(err)).Inc()
}
