package policy

import "github.com/m04kA/SMC-DepositService/internal/domain"

// Config проценты и пороги депозитной политики
// Порядок правил фиксирован, настраиваются только значения
type Config struct {
	NewClientPercentage          int
	RepeatCancellationPercentage int
	RepeatCancellationThreshold  int
	LowScorePercentage           int
	LowScoreThreshold            int
	SingleCancellationPercentage int
	StandardPercentage           int
	WeekendPremiumPoints         int
	WeekendFloorPercentage       int
}

// DefaultConfig значения политики по умолчанию
func DefaultConfig() Config {
	return Config{
		NewClientPercentage:          domain.DefaultNewClientPercentage,
		RepeatCancellationPercentage: domain.DefaultRepeatCancellationPercentage,
		RepeatCancellationThreshold:  domain.DefaultRepeatCancellationThreshold,
		LowScorePercentage:           domain.DefaultLowScorePercentage,
		LowScoreThreshold:            domain.DefaultLowScoreThreshold,
		SingleCancellationPercentage: domain.DefaultSingleCancellationPercentage,
		StandardPercentage:           domain.DefaultStandardPercentage,
		WeekendPremiumPoints:         domain.DefaultWeekendPremiumPoints,
		WeekendFloorPercentage:       domain.DefaultWeekendFloorPercentage,
	}
}

// Input данные для выбора процента депозита
type Input struct {
	Score                    int
	ConsecutiveCancellations int
	IsNewClient              bool
	IsWeekend                bool
}

// Decision результат применения политики
type Decision struct {
	BasePercentage int
	BaseReason     domain.PolicyReason
	Percentage     int
	Reason         domain.PolicyReason
}

type rule struct {
	reason     domain.PolicyReason
	percentage int
	matches    func(in Input) bool
}

// Engine таблица правил, срабатывает первое подходящее
type Engine struct {
	rules          []rule
	fallback       rule
	weekendPremium int
	weekendFloor   int
}

// NewEngine создает движок политики
func NewEngine(cfg Config) *Engine {
	return &Engine{
		rules: []rule{
			{
				reason:     domain.ReasonNewClient,
				percentage: cfg.NewClientPercentage,
				matches:    func(in Input) bool { return in.IsNewClient },
			},
			{
				reason:     domain.ReasonRepeatCancellation,
				percentage: cfg.RepeatCancellationPercentage,
				matches: func(in Input) bool {
					return in.ConsecutiveCancellations >= cfg.RepeatCancellationThreshold
				},
			},
			{
				reason:     domain.ReasonLowScore,
				percentage: cfg.LowScorePercentage,
				matches:    func(in Input) bool { return in.Score < cfg.LowScoreThreshold },
			},
			{
				reason:     domain.ReasonSingleRecentCancellation,
				percentage: cfg.SingleCancellationPercentage,
				matches:    func(in Input) bool { return in.ConsecutiveCancellations == 1 },
			},
		},
		fallback: rule{
			reason:     domain.ReasonStandard,
			percentage: cfg.StandardPercentage,
		},
		weekendPremium: cfg.WeekendPremiumPoints,
		weekendFloor:   cfg.WeekendFloorPercentage,
	}
}

// Evaluate выбирает процент депозита
// Надбавка выходного дня: max(base, base+premium, floor), не больше 100.
// Причина меняется на weekend_premium, только если именно минимум выходного дня поднял нулевой базовый процент
func (e *Engine) Evaluate(in Input) Decision {
	base := e.match(in)

	decision := Decision{
		BasePercentage: clampPercentage(base.percentage),
		BaseReason:     base.reason,
	}
	decision.Percentage = decision.BasePercentage
	decision.Reason = decision.BaseReason

	if !in.IsWeekend {
		return decision
	}

	percentage := max(decision.BasePercentage, decision.BasePercentage+e.weekendPremium, e.weekendFloor)
	decision.Percentage = clampPercentage(percentage)

	if decision.BasePercentage == 0 && decision.Percentage > 0 {
		decision.Reason = domain.ReasonWeekendPremium
	}

	return decision
}

func (e *Engine) match(in Input) rule {
	for _, r := range e.rules {
		if r.matches(in) {
			return r
		}
	}
	return e.fallback
}

func clampPercentage(p int) int {
	return min(max(p, domain.MinDepositPercentage), domain.MaxDepositPercentage)
}
