package deposit

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-DepositService/internal/domain"
	"github.com/m04kA/SMC-DepositService/internal/service/amount"
	"github.com/m04kA/SMC-DepositService/internal/service/policy"
)

// Orchestrator собирает котировку депозита: нормализация цены, политика, расчёт суммы
// Запись клиента не изменяется, скор обновляется только через reliability.ApplyEvent
type Orchestrator struct {
	normalizer AmountNormalizer
	engine     PolicyEngine
}

// NewOrchestrator создает оркестратор
func NewOrchestrator(normalizer AmountNormalizer, engine PolicyEngine) *Orchestrator {
	return &Orchestrator{
		normalizer: normalizer,
		engine:     engine,
	}
}

// Quote считает депозит для бронирования
// Ошибка нормализации возвращается без изменений, частичная котировка не возвращается никогда
func (o *Orchestrator) Quote(record *domain.ClientReliabilityRecord, bookingCtx domain.BookingContext) (*domain.DepositQuote, error) {
	if record == nil {
		record = domain.NewClientReliabilityRecord("")
	}

	// 1. Нормализуем цену
	normalized, err := o.normalize(bookingCtx)
	if err != nil {
		return nil, err
	}

	// 2. Выбираем процент по политике
	decision := o.engine.Evaluate(policy.Input{
		Score:                    record.Score,
		ConsecutiveCancellations: record.ConsecutiveCancellations,
		IsNewClient:              bookingCtx.IsNewClient,
		IsWeekend:                bookingCtx.IsWeekend,
	})

	// 3. Считаем сумму депозита
	base := normalized.Amount.MinorUnits

	return &domain.DepositQuote{
		ClientID:                record.ClientID,
		DepositPercentage:       decision.Percentage,
		DepositAmountMinorUnits: PercentageOf(base, decision.Percentage),
		BaseAmountMinorUnits:    base,
		DetectedFormat:          normalized.Amount.DetectedFormat,
		PolicyReason:            decision.Reason,
		Trace:                   normalized.Trace,
	}, nil
}

func (o *Orchestrator) normalize(bookingCtx domain.BookingContext) (*amount.Result, error) {
	if bookingCtx.PriceUnit != nil {
		return o.normalizer.NormalizeTagged(bookingCtx.BaseServicePrice, *bookingCtx.PriceUnit)
	}
	return o.normalizer.Normalize(bookingCtx.BaseServicePrice)
}

var hundred = decimal.NewFromInt(100)

// PercentageOf round(amount * percentage / 100), половина вверх
// Произведение считается в decimal: amount может быть близок к MaxInt64
func PercentageOf(amount int64, percentage int) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(int64(percentage))).
		Div(hundred).
		Round(0).
		IntPart()
}
