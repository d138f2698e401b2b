package get_free_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных,
	// которые нельзя деградировать в пустой список (нет ни услуги,
	// ни длительности)
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
