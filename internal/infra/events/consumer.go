package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-DepositService/internal/usecase/apply_reliability_event"
)

const (
	DefaultMinBytes       = 1
	DefaultMaxBytes       = 10e6
	DefaultInitialBackoff = 200 * time.Millisecond
	DefaultMaxBackoff     = 10 * time.Second
)

// ReaderConfig параметры чтения топика событий
type ReaderConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

// NewReader создает kafka.Reader в составе consumer group
// Коммит оффсетов только явный (CommitMessages), после успешной обработки
func NewReader(cfg ReaderConfig) (*kafka.Reader, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("%w: at least one broker required", ErrInvalidConfig)
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("%w: topic required", ErrInvalidConfig)
	}
	if cfg.GroupID == "" {
		return nil, fmt.Errorf("%w: group id required", ErrInvalidConfig)
	}
	if cfg.MinBytes <= 0 {
		cfg.MinBytes = DefaultMinBytes
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: cfg.MinBytes,
		MaxBytes: cfg.MaxBytes,
	}), nil
}

// Consumer применяет события жизненного цикла бронирований из Kafka (at-least-once)
//
// Сообщение коммитится только после успешного применения. Повторная доставка безопасна:
// событие с тем же eventId применяется не более одного раза.
// Нечитаемые сообщения и события неизвестного типа логируются и коммитятся,
// остальные ошибки повторяются с экспоненциальной задержкой
type Consumer struct {
	reader         Reader
	applier        EventApplier
	metrics        Metrics
	logger         Logger
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewConsumer создает новый экземпляр консьюмера
func NewConsumer(reader Reader, applier EventApplier, metrics Metrics, logger Logger) *Consumer {
	return &Consumer{
		reader:         reader,
		applier:        applier,
		metrics:        metrics,
		logger:         logger,
		initialBackoff: DefaultInitialBackoff,
		maxBackoff:     DefaultMaxBackoff,
	}
}

// Run читает сообщения, пока ctx не будет отменён
// Ошибки чтения и коммита не останавливают консьюмер, они повторяются с задержкой
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("Consumer: started")

	for {
		var msg kafka.Message
		err := c.retry(ctx, "fetch message", func() error {
			var fetchErr error
			msg, fetchErr = c.reader.FetchMessage(ctx)
			return fetchErr
		})
		if err != nil {
			c.logger.Info("Consumer: stopped")
			return nil
		}

		if err := c.process(ctx, msg); err != nil {
			c.logger.Info("Consumer: stopped, offset=%d of partition=%d not committed", msg.Offset, msg.Partition)
			return nil
		}

		err = c.retry(ctx, fmt.Sprintf("commit offset=%d", msg.Offset), func() error {
			return c.reader.CommitMessages(ctx, msg)
		})
		if err != nil {
			c.logger.Info("Consumer: stopped, offset=%d of partition=%d not committed", msg.Offset, msg.Partition)
			return nil
		}
	}
}

// retry повторяет fn с экспоненциальной задержкой, пока она не выполнится или не отменят ctx
func (c *Consumer) retry(ctx context.Context, op string, fn func() error) error {
	backoff := c.initialBackoff
	for {
		err := fn()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.logger.Error("Consumer: failed to %s, retry in %s: %v", op, backoff, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, c.maxBackoff)
	}
}

// Close закрывает reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// process обрабатывает сообщение до успеха, poison-сообщения или отмены ctx
func (c *Consumer) process(ctx context.Context, msg kafka.Message) error {
	req, err := decode(msg)
	if err != nil {
		c.logger.Warn("Consumer: skipping offset=%d partition=%d: %v", msg.Offset, msg.Partition, err)
		c.metrics.IncConsumedMessage(resultPoison)
		return nil
	}

	backoff := c.initialBackoff
	for {
		resp, err := c.applier.Execute(ctx, req)
		if err == nil {
			if resp.Applied {
				c.metrics.IncConsumedMessage(resultApplied)
			} else {
				c.metrics.IncConsumedMessage(resultDuplicate)
			}
			return nil
		}

		if errors.Is(err, apply_reliability_event.ErrInvalidEventKind) || errors.Is(err, apply_reliability_event.ErrInvalidInput) {
			c.logger.Warn("Consumer: skipping event=%s of client=%s: %v", req.EventID, req.ClientID, err)
			c.metrics.IncConsumedMessage(resultPoison)
			return nil
		}

		c.metrics.IncConsumedMessage(resultRetry)
		c.logger.Error("Consumer: failed to apply event=%s, retry in %s: %v", req.EventID, backoff, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, c.maxBackoff)
	}
}

func decode(msg kafka.Message) (*apply_reliability_event.Request, error) {
	var payload LifecycleMessage
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrPoisonMessage, err)
	}

	req := &apply_reliability_event.Request{
		ClientID: payload.ClientID,
		EventID:  payload.EventID,
		Kind:     payload.Kind,
	}
	if payload.OccurredAt != nil {
		req.OccurredAt = *payload.OccurredAt
	}

	return req, nil
}
