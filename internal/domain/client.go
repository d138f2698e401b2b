package domain

import "time"

// Client клиент салона
// Подбирается по контактам при подтверждении записи: сначала по телефону,
// затем по email; если совпадений нет — создаётся новый
type Client struct {
	ID    int64
	Name  string
	Phone *string
	Email *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
