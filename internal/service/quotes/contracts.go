package quotes

import (
	"context"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

// QuoteRepository интерфейс репозитория котировок
type QuoteRepository interface {
	GetByID(ctx context.Context, id string) (*domain.DepositQuote, error)
	ListByClientID(ctx context.Context, clientID string, limit uint64) ([]*domain.DepositQuote, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
