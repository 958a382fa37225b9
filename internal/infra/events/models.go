package events

import "time"

// LifecycleMessage событие жизненного цикла бронирования из топика
type LifecycleMessage struct {
	EventID    string     `json:"eventId"`
	ClientID   string     `json:"clientId"`
	Kind       string     `json:"kind"`
	OccurredAt *time.Time `json:"occurredAt,omitempty"`
}

// Результаты обработки для метрик
const (
	resultApplied   = "applied"
	resultDuplicate = "duplicate"
	resultPoison    = "poison"
	resultRetry     = "retry"
)
