package amount

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidNumericFormat возвращается, когда строка не является числом (после замены запятой на точку)
	ErrInvalidNumericFormat = errors.New("amount: invalid numeric format")

	// ErrInvalidAmount возвращается для отсутствующей, нечисловой (NaN) или неположительной суммы
	ErrInvalidAmount = errors.New("amount: invalid amount")

	// ErrAmountBelowMinimum возвращается, когда сумма меньше минимального списания провайдера
	ErrAmountBelowMinimum = errors.New("amount: below processor minimum")
)

// NormalizationError ошибка нормализации вместе с трассой шагов
type NormalizationError struct {
	Err    error
	Detail string
	Trace  []string
}

func (e *NormalizationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// TraceString трасса одной строкой для логов
func (e *NormalizationError) TraceString() string {
	return strings.Join(e.Trace, " -> ")
}

// FailureKind короткое имя ошибки для метрик и логов
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidNumericFormat):
		return "invalid_numeric_format"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrAmountBelowMinimum):
		return "amount_below_minimum"
	default:
		return "unknown"
	}
}
