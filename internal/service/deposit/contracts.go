package deposit

import (
	"github.com/m04kA/SMC-DepositService/internal/domain"
	"github.com/m04kA/SMC-DepositService/internal/service/amount"
	"github.com/m04kA/SMC-DepositService/internal/service/policy"
)

// AmountNormalizer интерфейс нормализатора сумм
type AmountNormalizer interface {
	Normalize(input interface{}) (*amount.Result, error)
	NormalizeTagged(input interface{}, unit domain.AmountFormat) (*amount.Result, error)
}

// PolicyEngine интерфейс депозитной политики
type PolicyEngine interface {
	Evaluate(in policy.Input) policy.Decision
}
