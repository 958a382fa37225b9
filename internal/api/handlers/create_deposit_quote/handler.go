package create_deposit_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DepositService/internal/api/handlers"
	"github.com/m04kA/SMC-DepositService/internal/api/middleware"
	"github.com/m04kA/SMC-DepositService/internal/service/amount"
	"github.com/m04kA/SMC-DepositService/internal/service/quotes/models"
	quoteDeposit "github.com/m04kA/SMC-DepositService/internal/usecase/quote_deposit"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты визита, ожидается YYYY-MM-DD"
	msgInvalidPriceType     = "цена должна быть строкой или числом"
	msgInvalidInput         = "некорректные данные запроса"
	msgInvalidNumericFormat = "некорректный формат суммы"
	msgInvalidAmount        = "сумма должна быть положительной"
	msgAmountBelowMinimum   = "сумма меньше минимальной суммы списания"
	msgServiceNotFound      = "услуга не найдена"
	msgPriceUnavailable     = "у услуги не указана цена"
	msgMissingUserID        = "не указан ID пользователя"
)

type Handler struct {
	useCase QuoteDepositUseCase
	logger  Logger
}

func NewHandler(useCase QuoteDepositUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/deposit-quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /deposit-quotes - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /deposit-quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /deposit-quotes - Failed to parse request: client_id=%s, error=%v", req.ClientID, err)
		if errors.Is(err, errInvalidPrice) {
			handlers.RespondBadRequest(w, msgInvalidPriceType)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, amount.ErrInvalidNumericFormat):
			h.logger.Warn("POST /deposit-quotes - Invalid numeric format: client_id=%s, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgInvalidNumericFormat)

		case errors.Is(err, amount.ErrInvalidAmount):
			h.logger.Warn("POST /deposit-quotes - Invalid amount: client_id=%s, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, amount.ErrAmountBelowMinimum):
			h.logger.Warn("POST /deposit-quotes - Amount below minimum: client_id=%s, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgAmountBelowMinimum)

		case errors.Is(err, quoteDeposit.ErrInvalidInput):
			h.logger.Warn("POST /deposit-quotes - Invalid input: client_id=%s, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, quoteDeposit.ErrServiceNotFound):
			h.logger.Warn("POST /deposit-quotes - Service not found: client_id=%s", req.ClientID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, quoteDeposit.ErrPriceUnavailable):
			h.logger.Warn("POST /deposit-quotes - Service has no price: client_id=%s", req.ClientID)
			handlers.RespondUnprocessable(w, msgPriceUnavailable)

		default:
			h.logger.Error("POST /deposit-quotes - Failed to create quote: client_id=%s, error=%v", req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /deposit-quotes - Quote created: quote_id=%s, client_id=%s, user_id=%d, percentage=%d, amount=%d",
		result.ID, result.ClientID, userID, result.DepositPercentage, result.DepositAmountMinorUnits)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainQuote(result))
}
