package issue_code

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
	msgInvalidBody      = "некорректное тело запроса"
	msgUnknownMethod    = "неизвестный метод верификации"
	msgNoContact        = "не указан контакт для отправки кода"
	msgDraftNotFound    = "черновик бронирования не найден"
	msgDraftExpired     = "черновик бронирования истёк, начните заново"
	msgContactImmutable = "черновик уже верифицирован, контакт изменить нельзя"
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

// Handle POST /api/v1/drafts/{draftId}/code
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	var req IssueCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /drafts/{id}/code - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	err := h.service.IssueCode(r.Context(), domain.VerifyMethod(req.Method), req.Contact, draftID)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrUnknownMethod):
			h.logger.Warn("POST /drafts/{id}/code - Unknown method: %s", req.Method)
			handlers.RespondBadRequest(w, msgUnknownMethod)

		case errors.Is(err, verification.ErrNoContact):
			h.logger.Warn("POST /drafts/{id}/code - No contact: draft_id=%s, method=%s", draftID, req.Method)
			handlers.RespondBadRequest(w, msgNoContact)

		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("POST /drafts/{id}/code - Draft not found: draft_id=%s", draftID)
			handlers.RespondNotFound(w, msgDraftNotFound)

		case errors.Is(err, drafts.ErrAlreadyVerified):
			h.logger.Warn("POST /drafts/{id}/code - Contact conflict after verification: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgContactImmutable)

		case errors.Is(err, drafts.ErrDraftExpired):
			h.logger.Warn("POST /drafts/{id}/code - Draft expired: draft_id=%s", draftID)
			handlers.RespondGone(w, msgDraftExpired)

		default:
			h.logger.Error("POST /drafts/{id}/code - Failed to issue code: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /drafts/{id}/code - Code issued: draft_id=%s, method=%s", draftID, req.Method)
	handlers.RespondJSON(w, http.StatusOK, IssueCodeResponse{Status: "sent"})
}
