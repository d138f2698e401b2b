package otpstore

import "errors"

var (
	// ErrCodeNotFound возвращается, когда код отсутствует или просрочен
	ErrCodeNotFound = errors.New("otpstore: code not found")

	// ErrEncode возвращается при ошибке сериализации записи кода
	ErrEncode = errors.New("otpstore: failed to encode entry")

	// ErrDecode возвращается при ошибке десериализации записи кода
	ErrDecode = errors.New("otpstore: failed to decode entry")
)
