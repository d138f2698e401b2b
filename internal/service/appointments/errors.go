package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrCannotCancel возвращается при попытке отменить завершенную
	// или уже отмененную запись
	ErrCannotCancel = errors.New("appointments: appointment cannot be canceled")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("appointments: internal error")
)
