package get_free_slots

import (
	"time"

	getFreeSlots "github.com/aknyshev/salon-booking-engine/internal/usecase/get_free_slots"
)

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	Date     string     `json:"date"`
	Timezone string     `json:"timezone"`
	Slots    []FreeSlot `json:"slots"`
}

// FreeSlot свободный слот, границы в UTC (RFC 3339)
type FreeSlot struct {
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFreeSlots.Response) *FreeSlotsResponse {
	slots := make([]FreeSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = FreeSlot{
			StartAt: slot.StartAt.Format(time.RFC3339),
			EndAt:   slot.EndAt.Format(time.RFC3339),
		}
	}

	return &FreeSlotsResponse{
		Date:     resp.Date,
		Timezone: resp.Timezone,
		Slots:    slots,
	}
}
