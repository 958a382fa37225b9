package events

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-DepositService/internal/usecase/apply_reliability_event"
)

// Reader источник сообщений (*kafka.Reader)
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventApplier use case применения события надёжности
type EventApplier interface {
	Execute(ctx context.Context, req *apply_reliability_event.Request) (*apply_reliability_event.Response, error)
}

// Metrics метрики обработки сообщений
type Metrics interface {
	IncConsumedMessage(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
