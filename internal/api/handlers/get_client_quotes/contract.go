package get_client_quotes

import (
	"context"

	"github.com/m04kA/SMC-DepositService/internal/service/quotes/models"
)

type QuoteService interface {
	GetClientQuotes(ctx context.Context, clientID string, limit int) (*models.QuoteListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
