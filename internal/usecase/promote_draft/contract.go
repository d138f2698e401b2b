package promote_draft

import (
	"context"
	"time"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/integrations/notifier"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetBlockingOverlapping получает блокирующие записи мастера,
	// пересекающие интервал, с блокировкой строк до конца транзакции
	GetBlockingOverlapping(ctx context.Context, masterID int64, from, to time.Time) ([]*domain.Appointment, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	FindByPhone(ctx context.Context, phone string) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// DraftService интерфейс сервиса черновиков
type DraftService interface {
	Get(ctx context.Context, draftID string) (*domain.Draft, error)
	AttachAppointment(ctx context.Context, draftID string, appointmentID int64) error
}

// OTPStore интерфейс хранилища одноразовых кодов
type OTPStore interface {
	Delete(ctx context.Context, method domain.VerifyMethod, contact, draftID string) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker интерфейс блокировки по ключу ресурса
type Locker interface {
	Acquire(key string) (release func())
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	NotifyAppointment(ctx context.Context, msg notifier.AppointmentMessage) error
}

// Metrics интерфейс счётчиков
type Metrics interface {
	IncAppointmentCreated()
	IncSlotConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
