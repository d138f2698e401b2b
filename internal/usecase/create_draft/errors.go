package create_draft

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrSlotTaken возвращается, когда слот уже занят блокирующей записью.
	// Проверка здесь — ранняя вежливость; решающая проверка выполняется
	// под блокировкой при промоушене
	ErrSlotTaken = errors.New("slot is already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
