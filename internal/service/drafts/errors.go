package drafts

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден
	ErrDraftNotFound = errors.New("drafts: draft not found")

	// ErrDraftExpired возвращается, когда черновик просрочен —
	// клиент должен начать бронирование заново
	ErrDraftExpired = errors.New("drafts: draft expired")

	// ErrUnknownSource возвращается при неизвестном канале бронирования
	ErrUnknownSource = errors.New("drafts: unknown draft source")

	// ErrAlreadyVerified возвращается при попытке менять контакты
	// после завершения верификации
	ErrAlreadyVerified = errors.New("drafts: draft already verified")

	// ErrAlreadyPromoted возвращается при попытке привязать вторую запись
	// к одному черновику
	ErrAlreadyPromoted = errors.New("drafts: draft already promoted")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("drafts: internal error")
)
