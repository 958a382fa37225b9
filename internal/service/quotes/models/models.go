package models

import (
	"time"

	"github.com/m04kA/SMC-DepositService/internal/domain"
)

// QuoteResponse котировка депозита для ответа API
type QuoteResponse struct {
	ID                string    `json:"id"`
	ClientID          string    `json:"clientId"`
	AppointmentDate   string    `json:"appointmentDate"`
	DepositPercentage int       `json:"depositPercentage"`
	DepositAmount     int64     `json:"depositAmount"` // в минимальных единицах (центах)
	BaseAmount        int64     `json:"baseAmount"`
	DetectedFormat    string    `json:"detectedFormat"`
	PolicyReason      string    `json:"policyReason"`
	Trace             []string  `json:"trace,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// QuoteListResponse список котировок
type QuoteListResponse struct {
	Quotes []*QuoteResponse `json:"quotes"`
}

// FromDomainQuote конвертирует domain.DepositQuote в QuoteResponse
func FromDomainQuote(quote *domain.DepositQuote) *QuoteResponse {
	return &QuoteResponse{
		ID:                quote.ID,
		ClientID:          quote.ClientID,
		AppointmentDate:   quote.AppointmentDate.Format(domain.DateFormat),
		DepositPercentage: quote.DepositPercentage,
		DepositAmount:     quote.DepositAmountMinorUnits,
		BaseAmount:        quote.BaseAmountMinorUnits,
		DetectedFormat:    string(quote.DetectedFormat),
		PolicyReason:      string(quote.PolicyReason),
		Trace:             quote.Trace,
		CreatedAt:         quote.CreatedAt,
	}
}

// FromDomainQuoteList конвертирует список котировок
func FromDomainQuoteList(quotes []*domain.DepositQuote) *QuoteListResponse {
	result := &QuoteListResponse{Quotes: make([]*QuoteResponse, 0, len(quotes))}
	for _, q := range quotes {
		result.Quotes = append(result.Quotes, FromDomainQuote(q))
	}
	return result
}
