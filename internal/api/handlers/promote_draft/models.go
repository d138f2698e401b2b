package promote_draft

import (
	promoteDraft "github.com/aknyshev/salon-booking-engine/internal/usecase/promote_draft"
)

// PromoteDraftResponse HTTP response model
type PromoteDraftResponse struct {
	AppointmentID  int64 `json:"appointmentId"`
	AlreadyExisted bool  `json:"alreadyExisted,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *promoteDraft.Response) *PromoteDraftResponse {
	return &PromoteDraftResponse{
		AppointmentID:  resp.AppointmentID,
		AlreadyExisted: resp.AlreadyExisted,
	}
}
