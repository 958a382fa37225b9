package apply_reliability_event

import (
	"time"

	"github.com/m04kA/SMC-DepositService/internal/service/reliability/models"
	applyEvent "github.com/m04kA/SMC-DepositService/internal/usecase/apply_reliability_event"
)

// ApplyEventRequest HTTP request model
type ApplyEventRequest struct {
	EventID    string  `json:"eventId"`
	Kind       string  `json:"kind"`                 // cancellation | no_show | completed
	OccurredAt *string `json:"occurredAt,omitempty"` // RFC3339
}

// ApplyEventResponse HTTP response model
type ApplyEventResponse struct {
	Record  *models.RecordResponse `json:"record"`
	Applied bool                   `json:"applied"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApplyEventRequest) ToUseCaseRequest(clientID string) (*applyEvent.Request, error) {
	req := &applyEvent.Request{
		ClientID: clientID,
		EventID:  r.EventID,
		Kind:     r.Kind,
	}

	if r.OccurredAt != nil {
		occurredAt, err := time.Parse(time.RFC3339, *r.OccurredAt)
		if err != nil {
			return nil, err
		}
		req.OccurredAt = occurredAt
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applyEvent.Response) *ApplyEventResponse {
	return &ApplyEventResponse{
		Record:  models.FromDomainRecord(resp.Record),
		Applied: resp.Applied,
	}
}
