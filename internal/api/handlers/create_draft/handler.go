package create_draft

import (
	"errors"
	"net/http"

	"github.com/aknyshev/salon-booking-engine/internal/api/handlers"
	createDraft "github.com/aknyshev/salon-booking-engine/internal/usecase/create_draft"
)

const (
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidInput    = "некорректные данные бронирования"
	msgServiceNotFound = "услуга не найдена"
	msgSlotTaken       = "выбранное время уже занято"
)

type Handler struct {
	useCase CreateDraftUseCase
	logger  Logger
}

func NewHandler(useCase CreateDraftUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createDraft.ErrInvalidInput):
			h.logger.Warn("POST /drafts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createDraft.ErrServiceNotFound):
			h.logger.Warn("POST /drafts - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createDraft.ErrSlotTaken):
			h.logger.Warn("POST /drafts - Slot taken: master_id=%d, start=%s", req.MasterID, req.StartAt)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /drafts - Failed to create draft: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts - Draft created: draft_id=%s, source=%s", result.DraftID, req.Source)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
