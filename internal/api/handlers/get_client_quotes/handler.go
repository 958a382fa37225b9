package get_client_quotes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DepositService/internal/api/handlers"
	"github.com/m04kA/SMC-DepositService/internal/service/quotes"
)

const (
	msgInvalidLimit    = "некорректный параметр limit"
	msgInvalidClientID = "некорректный ID клиента"
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

// Handle GET /api/v1/clients/{clientId}/deposit-quotes?limit=20
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /clients/{id}/deposit-quotes - Invalid limit: %q", limitStr)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.service.GetClientQuotes(r.Context(), clientID, limit)
	if err != nil {
		switch {
		case errors.Is(err, quotes.ErrInvalidInput):
			h.logger.Warn("GET /clients/{id}/deposit-quotes - Invalid client ID: %q", clientID)
			handlers.RespondBadRequest(w, msgInvalidClientID)

		default:
			h.logger.Error("GET /clients/{id}/deposit-quotes - Failed to get quotes: client_id=%s, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/deposit-quotes - Quotes retrieved: client_id=%s, count=%d", clientID, len(result.Quotes))
	handlers.RespondJSON(w, http.StatusOK, result)
}
