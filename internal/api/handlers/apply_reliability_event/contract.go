package apply_reliability_event

import (
	"context"

	applyEvent "github.com/m04kA/SMC-DepositService/internal/usecase/apply_reliability_event"
)

type ApplyReliabilityEventUseCase interface {
	Execute(ctx context.Context, req *applyEvent.Request) (*applyEvent.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
