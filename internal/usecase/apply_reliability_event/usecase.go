package apply_reliability_event

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DepositService/internal/domain"
	reliabilityRepo "github.com/m04kA/SMC-DepositService/internal/infra/storage/reliability"
	"github.com/m04kA/SMC-DepositService/internal/service/reliability"
)

// UseCase use case применения события жизненного цикла бронирования к записи клиента
type UseCase struct {
	reliabilityRepo ReliabilityRepository
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reliabilityRepo ReliabilityRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reliabilityRepo: reliabilityRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute применяет событие к записи клиента
// События одного клиента сериализуются: строка клиента блокируется в SERIALIZABLE транзакции.
// Повторное событие с тем же eventID не меняет запись и возвращает Applied=false
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyReliabilityEvent: client=%s, event=%s, kind=%s", req.ClientID, req.EventID, req.Kind)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApplyReliabilityEvent: validation failed: %v", err)
		uc.metrics.ObserveReliabilityEvent(req.Kind, resultRejected)
		return nil, err
	}

	// 2. Собираем событие
	event := domain.ReliabilityEvent{
		EventID:    req.EventID,
		ClientID:   req.ClientID,
		Kind:       domain.ReliabilityEventKind(req.Kind),
		OccurredAt: req.OccurredAt,
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = uc.timeProvider.Now()
	}

	var result *Response

	// 3. Применяем событие в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Создаём запись, если клиента ещё нет, чтобы её можно было заблокировать
		if err := uc.reliabilityRepo.EnsureExists(txCtx, event.ClientID); err != nil {
			uc.logger.Error("ApplyReliabilityEvent: failed to ensure record: %v", err)
			return fmt.Errorf("%w: failed to ensure record: %w", ErrInternal, err)
		}

		// 3.2. Получаем запись с блокировкой (FOR UPDATE)
		record, err := uc.reliabilityRepo.GetByClientID(txCtx, event.ClientID)
		if err != nil {
			uc.logger.Error("ApplyReliabilityEvent: failed to get record: %v", err)
			return fmt.Errorf("%w: failed to get record: %w", ErrInternal, err)
		}

		// 3.3. Пересчитываем запись
		updated, applied, err := reliability.ApplyEvent(record, event)
		if err != nil {
			if errors.Is(err, reliability.ErrInvalidEventKind) {
				return fmt.Errorf("%w: %v", ErrInvalidEventKind, err)
			}
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if !applied {
			result = &Response{Record: record, Applied: false}
			return nil
		}

		// 3.4. Фиксируем событие в журнале идемпотентности
		if err := uc.reliabilityRepo.AddEvent(txCtx, event); err != nil {
			if errors.Is(err, reliabilityRepo.ErrDuplicateEvent) {
				result = &Response{Record: record, Applied: false}
				return nil
			}
			uc.logger.Error("ApplyReliabilityEvent: failed to add event: %v", err)
			return fmt.Errorf("%w: failed to add event: %w", ErrInternal, err)
		}

		// 3.5. Сохраняем счётчики и скор
		if err := uc.reliabilityRepo.Update(txCtx, updated); err != nil {
			uc.logger.Error("ApplyReliabilityEvent: failed to update record: %v", err)
			return fmt.Errorf("%w: failed to update record: %w", ErrInternal, err)
		}

		result = &Response{Record: updated, Applied: true}
		return nil
	})

	if err != nil {
		uc.metrics.ObserveReliabilityEvent(req.Kind, resultFailed)
		if errors.Is(err, ErrInvalidEventKind) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("ApplyReliabilityEvent: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	// 4. Метрики и лог
	if !result.Applied {
		uc.logger.Info("ApplyReliabilityEvent: event=%s already applied for client=%s", event.EventID, event.ClientID)
		uc.metrics.ObserveReliabilityEvent(req.Kind, resultDuplicate)
		return result, nil
	}

	uc.metrics.ObserveReliabilityEvent(req.Kind, resultApplied)
	uc.metrics.ObserveReliabilityScore(result.Record.Score)
	uc.logger.Info("ApplyReliabilityEvent: client=%s score=%d consecutive=%d", event.ClientID, result.Record.Score, result.Record.ConsecutiveCancellations)

	return result, nil
}
