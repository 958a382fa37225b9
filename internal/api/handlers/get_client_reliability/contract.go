package get_client_reliability

import (
	"context"

	"github.com/m04kA/SMC-DepositService/internal/service/reliability/models"
)

type ReliabilityService interface {
	GetClientReliability(ctx context.Context, clientID string) (*models.RecordResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
