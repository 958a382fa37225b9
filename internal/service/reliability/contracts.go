package reliability

import (
	"context"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

// RecordRepository интерфейс репозитория записей надёжности
type RecordRepository interface {
	GetByClientID(ctx context.Context, clientID string) (*domain.ClientReliabilityRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
