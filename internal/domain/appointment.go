package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusDone      AppointmentStatus = "done"
	StatusCanceled  AppointmentStatus = "canceled"
)

// Appointment представляет подтверждённую запись клиента к мастеру.
// Инвариант: для одного мастера интервалы [StartAt, EndAt) записей
// со статусами pending/confirmed не пересекаются.
// Записи не удаляются — только переводятся по статусам.
type Appointment struct {
	ID        int64
	MasterID  int64
	ServiceID int64
	ClientID  int64
	StartAt   time.Time // UTC
	EndAt     time.Time // UTC
	Status    AppointmentStatus

	// Denormalized data for history
	ServiceName string

	Comment *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the appointment occupies its slot
func (a *Appointment) IsBlocking() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeCanceled returns true if the appointment can be canceled
func (a *Appointment) CanBeCanceled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// Overlaps проверяет пересечение с интервалом [start, end)
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartAt.Before(end) && start.Before(a.EndAt)
}
