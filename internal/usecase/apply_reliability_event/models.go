package apply_reliability_event

import (
	"time"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

// Request модель запроса на применение события
type Request struct {
	ClientID   string    // ID клиента
	EventID    string    // Ключ идемпотентности
	Kind       string    // cancellation | no_show | completed
	OccurredAt time.Time // Время события, если не задано - текущее
}

// Response результат применения события
type Response struct {
	Record  *domain.ClientReliabilityRecord // Запись после применения
	Applied bool                            // false - событие уже было применено ранее
}

// Результаты для метрик
const (
	resultApplied   = "applied"
	resultDuplicate = "duplicate"
	resultRejected  = "rejected"
	resultFailed    = "failed"
)
