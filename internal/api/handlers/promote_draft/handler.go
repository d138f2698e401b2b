package promote_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aknyshev/salon-booking-engine/internal/api/handlers"
	promoteDraft "github.com/aknyshev/salon-booking-engine/internal/usecase/promote_draft"
)

const (
	msgInvalidDraftID      = "некорректный ID черновика"
	msgRegistrationExpired = "бронирование истекло, начните заново"
	msgDraftNotVerified    = "бронирование не подтверждено кодом"
	msgSlotTaken           = "выбранное время уже занято, выберите другое"
)

type Handler struct {
	useCase PromoteDraftUseCase
	logger  Logger
}

func NewHandler(useCase PromoteDraftUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/promote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	result, err := h.useCase.Execute(r.Context(), &promoteDraft.Request{DraftID: draftID})
	if err != nil {
		switch {
		case errors.Is(err, promoteDraft.ErrInvalidInput):
			h.logger.Warn("POST /drafts/{id}/promote - Invalid draft ID")
			handlers.RespondBadRequest(w, msgInvalidDraftID)

		case errors.Is(err, promoteDraft.ErrRegistrationExpired):
			h.logger.Warn("POST /drafts/{id}/promote - Registration expired: draft_id=%s", draftID)
			handlers.RespondGone(w, msgRegistrationExpired)

		case errors.Is(err, promoteDraft.ErrDraftNotVerified):
			h.logger.Warn("POST /drafts/{id}/promote - Draft not verified: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgDraftNotVerified)

		case errors.Is(err, promoteDraft.ErrSlotTaken):
			h.logger.Warn("POST /drafts/{id}/promote - Slot taken: draft_id=%s", draftID)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /drafts/{id}/promote - Failed to promote: draft_id=%s, error=%v", draftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}

	h.logger.Info("POST /drafts/{id}/promote - Promoted: draft_id=%s, appointment_id=%d, already_existed=%t",
		draftID, result.AppointmentID, result.AlreadyExisted)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
