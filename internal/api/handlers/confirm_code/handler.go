package confirm_code

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aknyshev/salon-booking-engine/internal/api/handlers"
	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/service/drafts"
	"github.com/aknyshev/salon-booking-engine/internal/service/verification"
)

const (
	msgInvalidBody   = "некорректное тело запроса"
	msgUnknownMethod = "неизвестный метод верификации"
	msgCodeExpired   = "срок подтверждения истёк, запросите код заново"
	msgDraftNotFound = "черновик бронирования не найден"
	msgDraftExpired  = "черновик бронирования истёк, начните заново"
)

type Handler struct {
	service VerificationService
	logger  Logger
}

func NewHandler(service VerificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	var req ConfirmCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	err := h.service.ConfirmOutOfBand(r.Context(), domain.VerifyMethod(req.Method), req.Contact, draftID, req.ExternalActorID)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrUnknownMethod):
			h.logger.Warn("POST /drafts/{id}/confirm - Unknown method: %s", req.Method)
			handlers.RespondBadRequest(w, msgUnknownMethod)

		case errors.Is(err, verification.ErrCodeExpired):
			h.logger.Warn("POST /drafts/{id}/confirm - Code expired: draft_id=%s", draftID)
			handlers.RespondGone(w, msgCodeExpired)

		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{id}/confirm - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, drafts.ErrDraftExpired):
			h.logger.Warn("POST /drafts/{id}/confirm - Draft expired: draft_id=%s", draftID)
			handlers.RespondGone(w, msgDraftExpired)

		default:
			h.logger.Error("POST /drafts/{id}/confirm - Failed to confirm: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{id}/confirm - Confirmed: draft_id=%s, actor=%s", draftID, req.ExternalActorID)
	handlers.RespondJSON(w, http.StatusOK, ConfirmCodeResponse{Status: "confirmed"})
}
