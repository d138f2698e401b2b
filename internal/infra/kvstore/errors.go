package kvstore

import "errors"

var (
	// ErrKeyNotFound возвращается, когда ключ отсутствует или просрочен
	ErrKeyNotFound = errors.New("kvstore: key not found")

	// ErrInvalidTTL возвращается при попытке сохранить значение без TTL
	ErrInvalidTTL = errors.New("kvstore: ttl must be positive")

	// ErrInternal возвращается при ошибках бэкенда хранилища
	ErrInternal = errors.New("kvstore: internal error")
)
