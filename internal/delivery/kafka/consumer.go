package kafka

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"mk-orders/internal/lifecycle"
	"mk-orders/internal/service"
)

type Config struct {
	Brokers     []string
	GroupID     string
	Topic       string
	DLQ         string
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// Handler applies one command payload.
type Handler interface {
	HandleMessage(ctx context.Context, payload []byte) error
}

type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader  reader
	dlq     writer
	handler Handler
	cfg     Config
}

func NewConsumer(cfg Config, h Handler) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        100 * time.Millisecond,
		CommitInterval: 0,
	})

	var dlq writer
	if cfg.DLQ != "" {
		dlq = &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.DLQ,
			RequiredAcks:           kafka.RequireAll,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		}
	}
	return newConsumer(cfg, r, dlq, h)
}

func newConsumer(cfg Config, r reader, dlq writer, h Handler) *Consumer {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 200 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	return &Consumer{reader: r, dlq: dlq, handler: h, cfg: cfg}
}

// Subscribe consumes until ctx is cancelled. Every fetched message is
// committed once it is handled or parked on the dead letter topic.
func (c *Consumer) Subscribe(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			logrus.WithError(err).Warn("kafka fetch failed")
			select {
			case <-time.After(300 * time.Millisecond):
				continue
			case <-ctx.Done():
				return nil
			}
		}

		log := logrus.WithFields(logrus.Fields{
			"topic":     m.Topic,
			"partition": m.Partition,
			"offset":    m.Offset,
			"key":       string(m.Key),
		})
		log.Debug("command fetched")

		attempts, herr := c.handle(ctx, m.Value)
		if herr != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !c.deadLetter(ctx, m, herr, attempts) {
				continue
			}
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.WithError(err).Error("kafka commit failed")
		}
	}
}

func (c *Consumer) handle(ctx context.Context, payload []byte) (int, error) {
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(c.cfg.BaseBackoff),
		backoff.WithMaxInterval(c.cfg.MaxBackoff),
		backoff.WithMaxElapsedTime(0),
	)

	attempts := 0
	op := func() error {
		attempts++
		err := c.handler.HandleMessage(ctx, payload)
		if err != nil && isNonRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.cfg.MaxRetries)), ctx))
	return attempts, err
}

// deadLetter parks m with the failure reason. It reports false when the
// message must be fetched again.
func (c *Consumer) deadLetter(ctx context.Context, m kafka.Message, reason error, attempts int) bool {
	log := logrus.WithFields(logrus.Fields{"partition": m.Partition, "offset": m.Offset}).WithError(reason)
	if c.dlq == nil {
		log.Warn("DLQ disabled, dropping command")
		return true
	}

	headers := make([]kafka.Header, 0, len(m.Headers)+5)
	headers = append(headers, m.Headers...)
	headers = append(headers,
		kafka.Header{Key: "x-dlq-reason", Value: []byte(trimErr(reason))},
		kafka.Header{Key: "x-dlq-attempts", Value: []byte(strconv.Itoa(attempts))},
		kafka.Header{Key: "x-dlq-ts", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		kafka.Header{Key: "x-dlq-source-topic", Value: []byte(c.cfg.Topic)},
		kafka.Header{Key: "x-dlq-group", Value: []byte(c.cfg.GroupID)},
	)
	if err := c.dlq.WriteMessages(ctx, kafka.Message{Key: m.Key, Value: m.Value, Headers: headers}); err != nil {
		log.WithField("dlq_error", err.Error()).Error("write to DLQ failed")
		select {
		case <-time.After(500 * time.Millisecond):
		case <-ctx.Done():
		}
		return false
	}
	log.Warn("command moved to DLQ")
	return true
}

func (c *Consumer) Close() error {
	var first error
	if c.reader != nil {
		if err := c.reader.Close(); err != nil {
			first = err
		}
	}
	if c.dlq != nil {
		if err := c.dlq.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func trimErr(err error) string {
	if err == nil {
		return ""
	}
	s := err.Error()
	if len(s) > 1000 {
		return s[:1000]
	}
	return s
}

func isNonRetryable(err error) bool {
	return errors.Is(err, service.ErrDecode) ||
		errors.Is(err, lifecycle.ErrValidation) ||
		errors.Is(err, lifecycle.ErrInvalidState) ||
		errors.Is(err, lifecycle.ErrNotFound)
}
