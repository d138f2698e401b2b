package kvstore

import (
	"context"
	"time"
)

// Store интерфейс TTL key-value хранилища для эфемерного состояния
// бронирования (черновики, одноразовые коды).
//
// Реализации: Redis (multi-instance деплой) и in-process map
// (single-instance; состояние теряется при рестарте процесса).
type Store interface {
	// Save сохраняет значение, перезаписывая существующее.
	// ttl <= 0 недопустим: всё эфемерное состояние обязано истекать.
	Save(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get возвращает значение или ErrKeyNotFound, если ключ отсутствует
	// либо просрочен
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete удаляет ключ; отсутствие ключа не является ошибкой
	Delete(ctx context.Context, key string) error
}
