package domain

// Default configuration values
const (
	DefaultSlotStepMinutes = 10
	DefaultBufferMinutes   = 0
	DefaultOTPCodeLength   = 4
)

// Business validation constants
const (
	MinutesPerDay      = 1440
	MinServiceDuration = 5
	MaxServiceDuration = 480 // 8 часов
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы записей, занимающих слот
// Используются при построении занятых интервалов и при проверке конфликтов
var BlockingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
