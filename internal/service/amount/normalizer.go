package amount

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

// numericPattern необязательная целая часть, не более одной точки, только цифры
var numericPattern = regexp.MustCompile(`^\d*\.?\d*$`)

var (
	minorPerMajor = decimal.NewFromInt(domain.MinorUnitsPerMajor)
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
)

// Config параметры нормализатора
type Config struct {
	MinChargeMinorUnits int64
	MajorUnitsThreshold int64
}

// DefaultConfig параметры по умолчанию
func DefaultConfig() Config {
	return Config{
		MinChargeMinorUnits: domain.MinChargeMinorUnits,
		MajorUnitsThreshold: domain.MajorUnitsThreshold,
	}
}

// Result результат нормализации
type Result struct {
	Amount domain.MonetaryAmount
	Trace  []string
}

// Normalizer приводит денежный литерал к минимальным единицам валюты
// Чистая функция: без состояния, без I/O
type Normalizer struct {
	minCharge int64
	threshold decimal.Decimal
}

// NewNormalizer создает нормализатор
func NewNormalizer(cfg Config) *Normalizer {
	return &Normalizer{
		minCharge: cfg.MinChargeMinorUnits,
		threshold: decimal.NewFromInt(cfg.MajorUnitsThreshold),
	}
}

// Normalize приводит литерал к минимальным единицам, определяя единицу по величине:
// значение <= порога считается суммой в евро, больше порога - уже в центах.
// Для цен от 1000 евро эвристика ошибается, в таких случаях используйте NormalizeTagged
func (n *Normalizer) Normalize(input interface{}) (*Result, error) {
	trace := &tracer{}

	value, err := n.parseAndRound(input, trace)
	if err != nil {
		return nil, err
	}

	format := domain.FormatCents
	if value.LessThanOrEqual(n.threshold) {
		format = domain.FormatEuros
	}
	trace.add("detected format %s (threshold %s)", format, n.threshold)

	return n.finish(value, format, trace)
}

// NormalizeTagged приводит литерал с явно указанной единицей, без эвристики
func (n *Normalizer) NormalizeTagged(input interface{}, unit domain.AmountFormat) (*Result, error) {
	trace := &tracer{}

	if unit != domain.FormatEuros && unit != domain.FormatCents {
		trace.add("unit %q", unit)
		return nil, trace.fail(ErrInvalidAmount, "unknown unit %q", unit)
	}

	value, err := n.parseAndRound(input, trace)
	if err != nil {
		return nil, err
	}
	trace.add("explicit format %s", unit)

	return n.finish(value, unit, trace)
}

// parseAndRound шаги 1-3: разбор, округление до 2 знаков, проверка положительности
func (n *Normalizer) parseAndRound(input interface{}, trace *tracer) (decimal.Decimal, error) {
	trace.add("input %#v (%T)", input, input)

	value, err := parse(input, trace)
	if err != nil {
		return decimal.Zero, err
	}

	value = value.Round(2)
	trace.add("rounded to 2 places: %s", value)

	if !value.IsPositive() {
		return decimal.Zero, trace.fail(ErrInvalidAmount, "amount must be positive, got %s", value)
	}

	return value, nil
}

// finish шаги 4-6: перевод в минимальные единицы и проверка минимума
func (n *Normalizer) finish(value decimal.Decimal, format domain.AmountFormat, trace *tracer) (*Result, error) {
	minor := value
	if format == domain.FormatEuros {
		minor = value.Mul(minorPerMajor)
	}
	minor = minor.Round(0)
	trace.add("minor units %s", minor)

	if minor.GreaterThan(maxMinorUnits) {
		return nil, trace.fail(ErrInvalidAmount, "amount %s overflows minor units", minor)
	}

	minorUnits := minor.IntPart()
	if minorUnits < n.minCharge {
		return nil, trace.fail(ErrAmountBelowMinimum, "%d < minimum %d", minorUnits, n.minCharge)
	}

	return &Result{
		Amount: domain.MonetaryAmount{
			MinorUnits:     minorUnits,
			DetectedFormat: format,
		},
		Trace: trace.steps,
	}, nil
}

func parse(input interface{}, trace *tracer) (decimal.Decimal, error) {
	switch v := input.(type) {
	case nil:
		return decimal.Zero, trace.fail(ErrInvalidAmount, "amount is missing")

	case string:
		return parseString(v, trace)

	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, trace.fail(ErrInvalidNumericFormat, "%q is not a number", v.String())
		}
		return d, nil

	case float64:
		return parseFloat(v, trace)

	case float32:
		return parseFloat(float64(v), trace)

	case int:
		return decimal.NewFromInt(int64(v)), nil

	case int32:
		return decimal.NewFromInt(int64(v)), nil

	case int64:
		return decimal.NewFromInt(v), nil

	default:
		return decimal.Zero, trace.fail(ErrInvalidNumericFormat, "unsupported type %T", input)
	}
}

func parseString(s string, trace *tracer) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	trace.add("separator normalized: %q", s)

	if !numericPattern.MatchString(s) {
		return decimal.Zero, trace.fail(ErrInvalidNumericFormat, "%q does not match %s", s, numericPattern)
	}

	if s == "" || s == "." {
		return decimal.Zero, trace.fail(ErrInvalidAmount, "amount is missing")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, trace.fail(ErrInvalidNumericFormat, "parse %q: %v", s, err)
	}

	return d, nil
}

func parseFloat(v float64, trace *tracer) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, trace.fail(ErrInvalidAmount, "amount is not a finite number")
	}
	return decimal.NewFromFloat(v), nil
}

type tracer struct {
	steps []string
}

func (t *tracer) add(format string, args ...interface{}) {
	t.steps = append(t.steps, fmt.Sprintf(format, args...))
}

func (t *tracer) fail(kind error, format string, args ...interface{}) error {
	detail := fmt.Sprintf(format, args...)
	t.add("rejected: %s", detail)
	return &NormalizationError{
		Err:    kind,
		Detail: detail,
		Trace:  t.steps,
	}
}
