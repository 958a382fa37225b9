package create_deposit_quote

import (
	"context"

	"github.com/m04kA/SMC-DepositService/internal/domain"
	quoteDeposit "github.com/m04kA/SMC-DepositService/internal/usecase/quote_deposit"
)

type QuoteDepositUseCase interface {
	Execute(ctx context.Context, req *quoteDeposit.Request) (*domain.DepositQuote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
