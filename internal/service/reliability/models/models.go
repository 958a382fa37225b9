package models

import (
	"time"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

// RecordResponse запись надёжности клиента для ответа API
type RecordResponse struct {
	ClientID                 string     `json:"clientId"`
	Score                    int        `json:"score"`
	TotalCancellations       int        `json:"totalCancellations"`
	TotalNoShows             int        `json:"totalNoShows"`
	TotalBookings            int        `json:"totalBookings"`
	ConsecutiveCancellations int        `json:"consecutiveCancellations"`
	IsNewClient              bool       `json:"isNewClient"`
	LastEventAt              *time.Time `json:"lastEventAt,omitempty"`
}

// FromDomainRecord конвертирует domain.ClientReliabilityRecord в RecordResponse
// Идентификаторы применённых событий наружу не отдаются
func FromDomainRecord(record *domain.ClientReliabilityRecord) *RecordResponse {
	return &RecordResponse{
		ClientID:                 record.ClientID,
		Score:                    record.Score,
		TotalCancellations:       record.TotalCancellations,
		TotalNoShows:             record.TotalNoShows,
		TotalBookings:            record.TotalBookings,
		ConsecutiveCancellations: record.ConsecutiveCancellations,
		IsNewClient:              record.IsNewClient(),
		LastEventAt:              record.LastEventAt,
	}
}
