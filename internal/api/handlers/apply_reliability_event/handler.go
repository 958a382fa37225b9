package apply_reliability_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DepositService/internal/api/handlers"
	"github.com/m04kA/SMC-DepositService/internal/api/middleware"
	applyEvent "github.com/m04kA/SMC-DepositService/internal/usecase/apply_reliability_event"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOccurredAt  = "некорректный формат occurredAt, ожидается RFC3339"
	msgInvalidEventKind   = "неизвестный тип события, ожидается cancellation, no_show или completed"
	msgInvalidInput       = "не указан ID клиента или события"
	msgMissingUserID      = "не указан ID пользователя"
)

type Handler struct {
	useCase ApplyReliabilityEventUseCase
	logger  Logger
}

func NewHandler(useCase ApplyReliabilityEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/clients/{clientId}/reliability-events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /clients/{id}/reliability-events - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ApplyEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients/{id}/reliability-events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /clients/{id}/reliability-events - Invalid occurredAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOccurredAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, applyEvent.ErrInvalidEventKind):
			h.logger.Warn("POST /clients/{id}/reliability-events - Invalid event kind: client_id=%s, kind=%q", clientID, req.Kind)
			handlers.RespondBadRequest(w, msgInvalidEventKind)

		case errors.Is(err, applyEvent.ErrInvalidInput):
			h.logger.Warn("POST /clients/{id}/reliability-events - Invalid input: client_id=%s, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /clients/{id}/reliability-events - Failed to apply event: client_id=%s, event_id=%s, error=%v",
				clientID, req.EventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clients/{id}/reliability-events - Event processed: client_id=%s, event_id=%s, user_id=%d, applied=%t, score=%d",
		clientID, req.EventID, userID, result.Applied, result.Record.Score)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
