package get_free_slots

import (
	"context"
	"time"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetBlockingInRange получает блокирующие записи (pending/confirmed),
	// пересекающие диапазон; masterID == nil — по всем мастерам
	GetBlockingInRange(ctx context.Context, masterID *int64, from, to time.Time) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context, weekday int) (*domain.WorkingHours, error)
	GetMasterWorkingHours(ctx context.Context, masterID int64, weekday int) (*domain.MasterWorkingHours, error)
	GetTimeOff(ctx context.Context, date time.Time, masterID *int64) ([]*domain.TimeOff, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Metrics интерфейс счётчиков
type Metrics interface {
	IncSlotsQuery()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
