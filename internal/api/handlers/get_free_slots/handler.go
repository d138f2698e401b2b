package get_free_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aknyshev/salon-booking-engine/internal/api/handlers"
	getFreeSlots "github.com/aknyshev/salon-booking-engine/internal/usecase/get_free_slots"
)

const (
	msgMissingDate       = "дата обязательна"
	msgMissingDuration   = "нужен serviceId или durationMinutes"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgInvalidDuration   = "некорректная длительность"
	msgInvalidMasterID   = "некорректный ID мастера"
	msgInvalidParameters = "некорректные параметры запроса"
)

type Handler struct {
	useCase         GetFreeSlotsUseCase
	defaultTimezone string
	logger          Logger
}

func NewHandler(useCase GetFreeSlotsUseCase, defaultTimezone string, logger Logger) *Handler {
	return &Handler{
		useCase:         useCase,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Handle GET /api/v1/free-slots
// Query params: date (required, YYYY-MM-DD), serviceId или durationMinutes,
// masterId (optional), tz (optional, IANA идентификатор)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		h.logger.Warn("GET /free-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	timezone := query.Get("tz")
	if timezone == "" {
		timezone = h.defaultTimezone
	}

	req := &getFreeSlots.Request{
		Date:     date,
		Timezone: timezone,
	}

	if serviceIDStr := query.Get("serviceId"); serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /free-slots - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		req.ServiceID = &serviceID
	}

	if durationStr := query.Get("durationMinutes"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /free-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		req.DurationMinutes = &duration
	}

	if req.ServiceID == nil && req.DurationMinutes == nil {
		h.logger.Warn("GET /free-slots - Missing serviceId and durationMinutes")
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	if masterIDStr := query.Get("masterId"); masterIDStr != "" {
		masterID, err := strconv.ParseInt(masterIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /free-slots - Invalid master ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMasterID)
			return
		}
		req.MasterID = &masterID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getFreeSlots.ErrInvalidInput):
			h.logger.Warn("GET /free-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParameters)

		default:
			h.logger.Error("GET /free-slots - Failed to get slots: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /free-slots - Slots retrieved: date=%s, slots_count=%d", date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
