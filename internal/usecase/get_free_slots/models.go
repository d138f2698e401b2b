package get_free_slots

import "time"

// Request модель запроса свободных слотов
type Request struct {
	Date            string // Локальная дата в формате YYYY-MM-DD
	Timezone        string // IANA идентификатор таймзоны, например "Europe/Moscow"
	ServiceID       *int64 // ID услуги; длительность берется из услуги
	DurationMinutes *int   // Либо явная длительность (сумма выбранных услуг)
	MasterID        *int64 // Опциональный фильтр по мастеру
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date     string
	Timezone string
	Slots    []Slot
}

// Slot свободный слот, полуоткрытый интервал [StartAt, EndAt) в UTC
type Slot struct {
	StartAt time.Time
	EndAt   time.Time
}
