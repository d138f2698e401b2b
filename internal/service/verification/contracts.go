package verification

import (
	"context"
	"time"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore/otpstore"
	"github.com/aknyshev/salon-booking-engine/internal/integrations/notifier"
)

// OTPStore интерфейс хранилища одноразовых кодов
type OTPStore interface {
	Save(ctx context.Context, method domain.VerifyMethod, contact, draftID, code string, ttl time.Duration) error
	Get(ctx context.Context, method domain.VerifyMethod, contact, draftID string) (*otpstore.Entry, error)
	Verify(ctx context.Context, method domain.VerifyMethod, contact, draftID, code string) (bool, error)
	Confirm(ctx context.Context, method domain.VerifyMethod, contact, draftID string) error
	IsConfirmed(ctx context.Context, method domain.VerifyMethod, contact, draftID string) (bool, error)
}

// DraftService интерфейс сервиса черновиков
type DraftService interface {
	Get(ctx context.Context, draftID string) (*domain.Draft, error)
	UpdateContact(ctx context.Context, draftID, name, phone, email string) (*domain.Draft, error)
	MarkVerified(ctx context.Context, draftID string, method domain.VerifyMethod, contact string) error
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	SendCode(ctx context.Context, msg notifier.CodeMessage) error
}

// Metrics интерфейс счётчиков верификации
type Metrics interface {
	IncOTPIssued(method string)
	IncOTPVerified(method, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
