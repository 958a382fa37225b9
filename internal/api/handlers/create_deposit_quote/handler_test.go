package create_deposit_quote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DepositService/internal/api/middleware"
	"github.com/m04kA/SMC-DepositService/internal/domain"
	"github.com/m04kA/SMC-DepositService/internal/service/amount"
	"github.com/m04kA/SMC-DepositService/internal/service/quotes/models"
	quoteDeposit "github.com/m04kA/SMC-DepositService/internal/usecase/quote_deposit"
)

type fakeUseCase struct {
	req   *quoteDeposit.Request
	quote *domain.DepositQuote
	err   error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *quoteDeposit.Request) (*domain.DepositQuote, error) {
	f.req = req
	return f.quote, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deposit-quotes", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "7")
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandler_MissingUserID(t *testing.T) {
	uc := &fakeUseCase{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deposit-quotes",
		strings.NewReader(`{"clientId":"c","appointmentDate":"2025-10-18","price":"85"}`))
	rec := httptest.NewRecorder()

	// без middleware Auth в контексте нет пользователя
	NewHandler(uc, nopLogger{}).Handle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.req)
}

func TestHandler_Created(t *testing.T) {
	uc := &fakeUseCase{quote: &domain.DepositQuote{
		ID:                      "quote-1",
		ClientID:                "client-1",
		AppointmentDate:         time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC),
		DepositPercentage:       80,
		DepositAmountMinorUnits: 6800,
		BaseAmountMinorUnits:    8500,
		DetectedFormat:          domain.FormatEuros,
		PolicyReason:            domain.ReasonLowScore,
	}}

	rec := serve(uc, `{"clientId":"client-1","appointmentDate":"2025-10-18","price":"85"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(6800), resp.DepositAmount)
	assert.Equal(t, "low_score", resp.PolicyReason)
	assert.Equal(t, "2025-10-18", resp.AppointmentDate)

	assert.Equal(t, "85", uc.req.Price)
	assert.Nil(t, uc.req.PriceUnit)
}

func TestHandler_PriceShapes(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  interface{}
	}{
		{name: "string", price: `"11,70"`, want: "11,70"},
		{name: "integer", price: `6500`, want: json.Number("6500")},
		{name: "decimal", price: `65.5`, want: json.Number("65.5")},
		{name: "absent", price: `null`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{quote: &domain.DepositQuote{ID: "quote-1"}}
			rec := serve(uc, `{"clientId":"client-1","appointmentDate":"2025-10-20","price":`+tt.price+`,"companyId":7,"serviceId":3}`)

			require.Equal(t, http.StatusCreated, rec.Code)
			assert.Equal(t, tt.want, uc.req.Price)
			require.NotNil(t, uc.req.CompanyID)
			assert.Equal(t, int64(7), *uc.req.CompanyID)
		})
	}
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "malformed body", body: `{`, status: http.StatusBadRequest},
		{name: "bad date", body: `{"clientId":"c","appointmentDate":"18.10.2025","price":"85"}`, status: http.StatusBadRequest},
		{name: "bool price", body: `{"clientId":"c","appointmentDate":"2025-10-18","price":true}`, status: http.StatusBadRequest},
		{name: "numeric format", err: &amount.NormalizationError{Err: amount.ErrInvalidNumericFormat}, status: http.StatusBadRequest},
		{name: "invalid amount", err: amount.ErrInvalidAmount, status: http.StatusBadRequest},
		{name: "below minimum", err: amount.ErrAmountBelowMinimum, status: http.StatusBadRequest},
		{name: "invalid input", err: quoteDeposit.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "service not found", err: quoteDeposit.ErrServiceNotFound, status: http.StatusNotFound},
		{name: "no price", err: quoteDeposit.ErrPriceUnavailable, status: http.StatusUnprocessableEntity},
		{name: "internal", err: errors.New("db down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == "" {
				body = `{"clientId":"c","appointmentDate":"2025-10-18","price":"85"}`
			}

			rec := serve(&fakeUseCase{err: tt.err}, body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
