package poll_confirmation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aknyshev/salon-booking-engine/internal/api/handlers"
	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/service/verification"
)

const (
	msgMissingMethod  = "не указан метод верификации"
	msgUnknownMethod  = "неизвестный метод верификации"
	msgMissingContact = "не указан контакт"
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

// Handle GET /api/v1/drafts/{draftId}/confirmation
// Query params: method, contact — клиент поллит статус out-of-band
// подтверждения (например, нажал ли пользователь кнопку в боте)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]
	query := r.URL.Query()

	method := query.Get("method")
	if method == "" {
		h.logger.Warn("GET /drafts/{id}/confirmation - Missing method")
		handlers.RespondBadRequest(w, msgMissingMethod)
		return
	}

	contact := query.Get("contact")
	if contact == "" {
		h.logger.Warn("GET /drafts/{id}/confirmation - Missing contact")
		handlers.RespondBadRequest(w, msgMissingContact)
		return
	}

	status, err := h.service.Poll(r.Context(), domain.VerifyMethod(method), contact, draftID)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrUnknownMethod):
			h.logger.Warn("GET /drafts/{id}/confirmation - Unknown method: %s", method)
			handlers.RespondBadRequest(w, msgUnknownMethod)

		default:
			h.logger.Error("GET /drafts/{id}/confirmation - Failed to poll: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, PollConfirmationResponse{Status: string(status)})
}
