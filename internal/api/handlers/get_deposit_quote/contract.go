package get_deposit_quote

import (
	"context"

	"github.com/m04kA/SMC-DepositService/internal/service/quotes/models"
)

type QuoteService interface {
	GetByID(ctx context.Context, id string) (*models.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
