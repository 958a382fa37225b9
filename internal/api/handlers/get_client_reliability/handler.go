package get_client_reliability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DepositService/internal/api/handlers"
	"github.com/m04kA/SMC-DepositService/internal/service/reliability"
)

const msgInvalidClientID = "некорректный ID клиента"

type Handler struct {
	service ReliabilityService
	logger  Logger
}

func NewHandler(service ReliabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/reliability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]

	record, err := h.service.GetClientReliability(r.Context(), clientID)
	if err != nil {
		switch {
		case errors.Is(err, reliability.ErrInvalidInput):
			h.logger.Warn("GET /clients/{id}/reliability - Invalid client ID: %q", clientID)
			handlers.RespondBadRequest(w, msgInvalidClientID)

		default:
			h.logger.Error("GET /clients/{id}/reliability - Failed to get record: client_id=%s, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{id}/reliability - Record retrieved: client_id=%s, score=%d", clientID, record.Score)
	handlers.RespondJSON(w, http.StatusOK, record)
}
