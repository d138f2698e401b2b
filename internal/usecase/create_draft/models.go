package create_draft

import "time"

// Request модель запроса на создание черновика бронирования
type Request struct {
	Source    string // Канал бронирования: direct, sms_otp, telegram_otp, quick_auth
	ServiceID int64
	MasterID  int64
	StartAt   time.Time
	EndAt     time.Time

	Name  string
	Phone string
	Email string

	TelegramChatID *int64
	ExternalUserID *string
}

// Response модель ответа с созданным черновиком
type Response struct {
	DraftID   string
	ExpiresAt time.Time
}
