package apply_reliability_event

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

const maxIDLength = 128

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ClientID) == "" {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.EventID) == "" {
		return fmt.Errorf("%w: eventID is required", ErrInvalidInput)
	}

	if len(req.ClientID) > maxIDLength || len(req.EventID) > maxIDLength {
		return fmt.Errorf("%w: ids must not exceed %d characters", ErrInvalidInput, maxIDLength)
	}

	if !domain.ReliabilityEventKind(req.Kind).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidEventKind, req.Kind)
	}

	return nil
}
