package quote_deposit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DepositService/internal/domain"
	sellerClient "github.com/m04kA/SMC-DepositService/internal/integrations/sellerservice"
	"github.com/m04kA/SMC-DepositService/internal/service/amount"
)

// UseCase use case расчёта депозита для бронирования
type UseCase struct {
	reliability  ReliabilityReader
	sellerClient SellerServiceClient
	orchestrator Orchestrator
	quoteRepo    QuoteRepository
	metrics      Metrics
	weekendDays  []time.Weekday
	newID        IDGenerator
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// weekendDays пустой - используются domain.DefaultWeekendDays
func NewUseCase(
	reliability ReliabilityReader,
	sellerClient SellerServiceClient,
	orchestrator Orchestrator,
	quoteRepo QuoteRepository,
	metrics Metrics,
	weekendDays []time.Weekday,
	logger Logger,
) *UseCase {
	if len(weekendDays) == 0 {
		weekendDays = domain.DefaultWeekendDays
	}

	return &UseCase{
		reliability:  reliability,
		sellerClient: sellerClient,
		orchestrator: orchestrator,
		quoteRepo:    quoteRepo,
		metrics:      metrics,
		weekendDays:  weekendDays,
		newID:        uuid.NewString,
		logger:       logger,
	}
}

// Execute считает и сохраняет котировку депозита
// Ошибки нормализации цены (amount.ErrInvalidNumericFormat, amount.ErrInvalidAmount,
// amount.ErrAmountBelowMinimum) возвращаются без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.DepositQuote, error) {
	uc.logger.Info("QuoteDeposit: client=%s, date=%s, price=%v",
		req.ClientID, req.AppointmentDate.Format(domain.DateFormat), req.Price)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuoteDeposit: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись надёжности клиента
	record, err := uc.reliability.GetRecord(ctx, req.ClientID)
	if err != nil {
		uc.logger.Error("QuoteDeposit: failed to get reliability record for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get reliability record: %v", ErrInternal, err)
	}

	// 3. Определяем цену и её единицу
	price, unit, err := uc.resolvePrice(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Собираем контекст бронирования
	bookingCtx := domain.BookingContext{
		IsWeekend:        domain.IsWeekend(req.AppointmentDate, uc.weekendDays),
		IsNewClient:      record.IsNewClient(),
		BaseServicePrice: price,
		PriceUnit:        unit,
	}

	// 5. Считаем котировку
	quote, err := uc.orchestrator.Quote(record, bookingCtx)
	if err != nil {
		uc.metrics.IncNormalizationFailure(amount.FailureKind(err))

		var normErr *amount.NormalizationError
		if errors.As(err, &normErr) {
			uc.logger.Warn("QuoteDeposit: price rejected for client=%s: %v, trace: %s", req.ClientID, err, normErr.TraceString())
		} else {
			uc.logger.Warn("QuoteDeposit: price rejected for client=%s: %v", req.ClientID, err)
		}
		return nil, err
	}

	quote.ID = uc.newID()
	quote.ClientID = req.ClientID
	quote.AppointmentDate = req.AppointmentDate

	// 6. Сохраняем котировку для аудита
	created, err := uc.quoteRepo.Create(ctx, quote)
	if err != nil {
		uc.logger.Error("QuoteDeposit: failed to save quote id=%s: %v", quote.ID, err)
		return nil, fmt.Errorf("%w: failed to save quote: %v", ErrInternal, err)
	}

	uc.metrics.ObserveDepositQuote(string(created.PolicyReason), created.DepositPercentage)
	uc.logger.Info("QuoteDeposit: quote id=%s, client=%s, score=%d, weekend=%t, %d%% of %d = %d, reason=%s",
		created.ID, created.ClientID, record.Score, bookingCtx.IsWeekend,
		created.DepositPercentage, created.BaseAmountMinorUnits, created.DepositAmountMinorUnits, created.PolicyReason)

	return created, nil
}

// resolvePrice цена из запроса или из SellerService
// Цены SellerService всегда в евро, поэтому нормализуются без эвристики по величине
func (uc *UseCase) resolvePrice(ctx context.Context, req *Request) (interface{}, *domain.AmountFormat, error) {
	if req.Price != nil {
		if req.PriceUnit == nil {
			return req.Price, nil, nil
		}
		unit, _ := domain.ParseAmountFormat(*req.PriceUnit)
		return req.Price, &unit, nil
	}

	service, err := uc.sellerClient.GetService(ctx, *req.CompanyID, *req.ServiceID)
	if err != nil {
		if errors.Is(err, sellerClient.ErrServiceNotFound) {
			uc.logger.Warn("QuoteDeposit: service id=%d of company id=%d not found", *req.ServiceID, *req.CompanyID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("QuoteDeposit: failed to get service id=%d: %v", *req.ServiceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.Price == nil {
		uc.logger.Warn("QuoteDeposit: service id=%d has no price", service.ID)
		return nil, nil, ErrPriceUnavailable
	}

	unit := domain.FormatEuros
	return *service.Price, &unit, nil
}
