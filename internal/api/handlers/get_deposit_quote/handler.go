package get_deposit_quote

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DepositService/internal/api/handlers"
	"github.com/m04kA/SMC-DepositService/internal/service/quotes"
)

const (
	msgInvalidQuoteID = "некорректный ID котировки"
	msgNotFound       = "котировка не найдена"
)

type Handler struct {
	service QuoteService
	logger  Logger
}

func NewHandler(service QuoteService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/deposit-quotes/{quoteId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	quoteID := mux.Vars(r)["quoteId"]

	quote, err := h.service.GetByID(r.Context(), quoteID)
	if err != nil {
		switch {
		case errors.Is(err, quotes.ErrInvalidInput):
			h.logger.Warn("GET /deposit-quotes/{id} - Invalid quote ID: %q", quoteID)
			handlers.RespondBadRequest(w, msgInvalidQuoteID)

		case errors.Is(err, quotes.ErrQuoteNotFound):
			h.logger.Warn("GET /deposit-quotes/{id} - Quote not found: quote_id=%s", quoteID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /deposit-quotes/{id} - Failed to get quote: quote_id=%s, error=%v", quoteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /deposit-quotes/{id} - Quote retrieved: quote_id=%s", quoteID)
	handlers.RespondJSON(w, http.StatusOK, quote)
}
