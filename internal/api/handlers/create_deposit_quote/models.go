package create_deposit_quote

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/m04kA/SMC-DepositService/internal/domain"
	quoteDeposit "github.com/m04kA/SMC-DepositService/internal/usecase/quote_deposit"
)

var (
	errInvalidDate  = errors.New("invalid appointment date")
	errInvalidPrice = errors.New("price must be a string or a number")
)

// CreateQuoteRequest HTTP request model
type CreateQuoteRequest struct {
	ClientID        string          `json:"clientId"`
	AppointmentDate string          `json:"appointmentDate"` // "2025-10-18"
	Price           json.RawMessage `json:"price,omitempty"` // "85", "11,70", 85 или 6500
	PriceUnit       *string         `json:"priceUnit,omitempty"`
	CompanyID       *int64          `json:"companyId,omitempty"`
	ServiceID       *int64          `json:"serviceId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Цена передаётся дальше как есть (string или json.Number), разбор выполняет нормализатор
func (r *CreateQuoteRequest) ToUseCaseRequest() (*quoteDeposit.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, errInvalidDate
	}

	price, err := decodePrice(r.Price)
	if err != nil {
		return nil, err
	}

	return &quoteDeposit.Request{
		ClientID:        r.ClientID,
		AppointmentDate: date,
		Price:           price,
		PriceUnit:       r.PriceUnit,
		CompanyID:       r.CompanyID,
		ServiceID:       r.ServiceID,
	}, nil
}

func decodePrice(raw json.RawMessage) (interface{}, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, errInvalidPrice
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, errInvalidPrice
	}
	return n, nil
}
