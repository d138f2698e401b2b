package domain

import "time"

// Service услуга салона
// DurationMinutes определяет ширину слота; неактивные услуги слотов не дают
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           *float64
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
