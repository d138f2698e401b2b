package verification

import "errors"

var (
	// ErrUnknownMethod возвращается при неизвестном методе верификации
	ErrUnknownMethod = errors.New("verification: unknown verify method")

	// ErrNoContact возвращается, когда для метода нет контакта —
	// ни в запросе, ни в черновике
	ErrNoContact = errors.New("verification: no contact for method")

	// ErrCodeExpired возвращается, когда код отсутствует или просрочен —
	// клиенту нужно запросить новый код или начать флоу заново
	ErrCodeExpired = errors.New("verification: code expired")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("verification: internal error")
)
