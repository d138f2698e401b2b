package get_appointment

import (
	"time"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
)

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          int64     `json:"id"`
	MasterID    int64     `json:"masterId"`
	ServiceID   int64     `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          appt.ID,
		MasterID:    appt.MasterID,
		ServiceID:   appt.ServiceID,
		ServiceName: appt.ServiceName,
		StartAt:     appt.StartAt,
		EndAt:       appt.EndAt,
		Status:      string(appt.Status),
		CreatedAt:   appt.CreatedAt,
	}
}
