package promote_draft

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrRegistrationExpired возвращается, когда черновик отсутствует
	// или просрочен — клиенту нужно начать бронирование заново
	ErrRegistrationExpired = errors.New("registration expired")

	// ErrDraftNotVerified возвращается при попытке промоушена
	// неверифицированного черновика
	ErrDraftNotVerified = errors.New("draft is not verified")

	// ErrSlotTaken возвращается, когда слот занят конкурирующей записью.
	// Автоматических ретраев нет: клиент запрашивает доступность заново
	// и выбирает другой слот
	ErrSlotTaken = errors.New("slot is already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
