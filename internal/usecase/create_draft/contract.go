package create_draft

import (
	"context"
	"time"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/service/drafts"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetBlockingInRange(ctx context.Context, masterID *int64, from, to time.Time) ([]*domain.Appointment, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// DraftService интерфейс сервиса черновиков
type DraftService interface {
	Create(ctx context.Context, params drafts.CreateParams) (*domain.Draft, error)
}

// Metrics интерфейс счётчиков
type Metrics interface {
	IncDraftCreated(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
