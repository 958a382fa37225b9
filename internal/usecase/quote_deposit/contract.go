package quote_deposit

import (
	"context"

	"github.com/m04kA/SMC-DepositService/internal/domain"
	"github.com/m04kA/SMC-DepositService/internal/integrations/sellerservice"
)

// ReliabilityReader чтение записи клиента (начальная запись для клиента без истории)
type ReliabilityReader interface {
	GetRecord(ctx context.Context, clientID string) (*domain.ClientReliabilityRecord, error)
}

// SellerServiceClient интерфейс клиента для SellerService
type SellerServiceClient interface {
	GetService(ctx context.Context, companyID, serviceID int64) (*sellerservice.Service, error)
}

// Orchestrator расчёт котировки депозита
type Orchestrator interface {
	Quote(record *domain.ClientReliabilityRecord, bookingCtx domain.BookingContext) (*domain.DepositQuote, error)
}

// QuoteRepository интерфейс репозитория котировок
type QuoteRepository interface {
	Create(ctx context.Context, quote *domain.DepositQuote) (*domain.DepositQuote, error)
}

// Metrics доменные метрики котировок
type Metrics interface {
	ObserveDepositQuote(reason string, percentage int)
	IncNormalizationFailure(kind string)
}

// IDGenerator генератор идентификаторов котировок
type IDGenerator func() string

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
