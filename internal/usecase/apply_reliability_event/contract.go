package apply_reliability_event

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

// ReliabilityRepository интерфейс репозитория записей надёжности
type ReliabilityRepository interface {
	EnsureExists(ctx context.Context, clientID string) error
	GetByClientID(ctx context.Context, clientID string) (*domain.ClientReliabilityRecord, error)
	Update(ctx context.Context, record *domain.ClientReliabilityRecord) error
	AddEvent(ctx context.Context, event domain.ReliabilityEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные метрики событий надёжности
type Metrics interface {
	ObserveReliabilityEvent(kind, result string)
	ObserveReliabilityScore(score int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
