package verify_code

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

// Handle POST /api/v1/drafts/{draftId}/verify
// Неверный код — не ошибка HTTP: клиент может вводить код повторно
// до истечения срока, результат сообщается в теле ответа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	var req VerifyCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts/{id}/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.VerifyCode(r.Context(), domain.VerifyMethod(req.Method), req.Contact, draftID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrUnknownMethod):
			h.logger.Warn("POST /drafts/{id}/verify - Unknown method: %s", req.Method)
			handlers.RespondBadRequest(w, msgUnknownMethod)

		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{id}/verify - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, drafts.ErrDraftExpired):
			h.logger.Warn("POST /drafts/{id}/verify - Draft expired: draft_id=%s", draftID)
			handlers.RespondGone(w, msgDraftExpired)

		default:
			h.logger.Error("POST /drafts/{id}/verify - Failed to verify code: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{id}/verify - Verification result: draft_id=%s, result=%s", draftID, result)
	handlers.RespondJSON(w, http.StatusOK, VerifyCodeResponse{Result: string(result)})
}
