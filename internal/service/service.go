package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"mk-orders/internal/aggregate"
	"mk-orders/internal/itemset"
	"mk-orders/internal/lifecycle"
	"mk-orders/internal/models"
	"mk-orders/internal/repository"
	"mk-orders/internal/repository/watch"
)

type Order interface {
	CreateDraft(ctx context.Context, meta models.Meta, items any) (models.Order, error)
	GetOrder(ctx context.Context, id string) (models.Order, error)
	ListOrders(ctx context.Context, statuses ...models.Status) ([]models.Order, error)
	Summary(ctx context.Context, id string) (OrderSummary, error)
	Review(ctx context.Context, ids ...string) (Review, error)

	UpdateItems(ctx context.Context, id string, items any) (models.Order, error)
	Submit(ctx context.Context, id string) (models.Order, error)
	Accept(ctx context.Context, id string) (models.Order, error)
	StartProcessing(ctx context.Context, id string) (models.Order, error)
	Complete(ctx context.Context, id string) (models.Order, error)
	Ship(ctx context.Context, id string, s lifecycle.Shipment) (models.Order, error)
	RecordProgress(ctx context.Context, id, key string, completed int) (models.Order, error)
	Delete(ctx context.Context, id string) error

	Subscribe(pred models.Predicate, cb watch.Callback) func()
	Dashboard(ctx context.Context) (aggregate.Dashboard, error)
	Timeline(ctx context.Context, limit int) ([]aggregate.TimelineEvent, error)

	HandleMessage(ctx context.Context, payload []byte) error
}

// EventPublisher is told about every status change after it is stored.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, ev StatusChangedEvent) error
}

type StatusChangedEvent struct {
	OrderID string        `json:"order_id"`
	From    models.Status `json:"from"`
	To      models.Status `json:"to"`
	At      time.Time     `json:"at"`
}

type Service struct {
	store   repository.OrderStore
	machine *lifecycle.Machine
	events  EventPublisher
	live    *aggregate.Live
	v       *validator.Validate
	now     func() time.Time
}

var _ Order = (*Service)(nil)

type Option func(*Service)

func WithEvents(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

// WithLive serves the dashboard and timeline from a push-maintained view
// instead of listing the store on each call.
func WithLive(l *aggregate.Live) Option {
	return func(s *Service) { s.live = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store repository.OrderStore, machine *lifecycle.Machine, opts ...Option) *Service {
	s := &Service{
		store:   store,
		machine: machine,
		v:       validator.New(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type OrderSummary struct {
	Order           models.Order      `json:"order"`
	TotalItems      int               `json:"total_items"`
	TotalLines      int               `json:"total_lines"`
	PercentComplete int               `json:"percent_complete"`
	Variants        []itemset.Variant `json:"variants"`
	ColourClass     string            `json:"colour_class"`
}

// Review is a read-only merge of several orders' lines.
type Review struct {
	OrderIDs   []string          `json:"order_ids"`
	Lines      models.Lines      `json:"lines"`
	TotalItems int               `json:"total_items"`
	TotalLines int               `json:"total_lines"`
	Variants   []itemset.Variant `json:"variants"`
}
