package domain

import (
	"strconv"
	"time"
)

// DraftSource канал, через который начато бронирование
type DraftSource string

const (
	SourceDirect      DraftSource = "direct"
	SourceSmsOTP      DraftSource = "sms_otp"
	SourceTelegramOTP DraftSource = "telegram_otp"
	SourceQuickAuth   DraftSource = "quick_auth"
)

// KnownSources все поддерживаемые каналы бронирования
var KnownSources = []DraftSource{
	SourceDirect,
	SourceSmsOTP,
	SourceTelegramOTP,
	SourceQuickAuth,
}

// IsKnown проверяет, что канал поддерживается
func (s DraftSource) IsKnown() bool {
	for _, known := range KnownSources {
		if s == known {
			return true
		}
	}
	return false
}

// VerifyMethod канал доставки одноразового кода
type VerifyMethod string

const (
	MethodSMS      VerifyMethod = "sms"
	MethodEmail    VerifyMethod = "email"
	MethodTelegram VerifyMethod = "telegram"
)

// IsKnown проверяет, что метод верификации поддерживается
func (m VerifyMethod) IsKnown() bool {
	return m == MethodSMS || m == MethodEmail || m == MethodTelegram
}

// Draft черновик бронирования: выбранный слот, ожидающий верификации.
// Жизненный цикл: Created → Verified → Promoted, либо Expired из любого
// нетерминального состояния.
//
// Поля слота (ServiceID, MasterID, StartAt, EndAt) неизменяемы после
// создания. Контактные данные могут дозаполняться до завершения
// верификации — например, телефон появляется после первого шага
// идентификации. Ровно один черновик превращается ровно в одну запись.
type Draft struct {
	ID     string
	Source DraftSource

	ServiceID int64
	MasterID  int64
	StartAt   time.Time // UTC
	EndAt     time.Time // UTC

	Name  string
	Phone string
	Email string

	// Метаданные каналов
	TelegramChatID *int64  // telegram_otp
	ExternalUserID *string // quick_auth

	Verified bool
	// Канал и контакт, которыми фактически прошла верификация;
	// по ним гасится использованный код при промоушене
	VerifiedVia     VerifyMethod
	VerifiedContact string

	AppointmentID *int64

	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired возвращает true, если черновик просрочен
func (d *Draft) IsExpired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}

// IsPromoted возвращает true, если черновик уже превращён в запись
func (d *Draft) IsPromoted() bool {
	return d.AppointmentID != nil
}

// Contact возвращает контакт для указанного метода верификации
func (d *Draft) Contact(method VerifyMethod) string {
	switch method {
	case MethodSMS:
		return d.Phone
	case MethodEmail:
		return d.Email
	case MethodTelegram:
		if d.TelegramChatID != nil {
			return telegramContact(*d.TelegramChatID)
		}
		return ""
	default:
		return ""
	}
}

func telegramContact(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// VerifyMethodForSource возвращает метод верификации, соответствующий каналу
// бронирования. Для direct и quick_auth код доставляется по SMS.
func (d *Draft) VerifyMethodForSource() VerifyMethod {
	if d.Source == SourceTelegramOTP {
		return MethodTelegram
	}
	return MethodSMS
}
