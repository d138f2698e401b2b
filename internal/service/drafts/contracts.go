package drafts

import (
	"context"
	"time"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
)

// DraftStore интерфейс TTL хранилища черновиков
type DraftStore interface {
	Save(ctx context.Context, draft *domain.Draft) error
	Get(ctx context.Context, draftID string) (*domain.Draft, error)
	Delete(ctx context.Context, draftID string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
