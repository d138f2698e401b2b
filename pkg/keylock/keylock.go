package keylock

import "sync"

// KeyLock обеспечивает взаимное исключение по строковому ключу ресурса.
// Блокировки по разным ключам не конфликтуют, по одному ключу — строго
// сериализуются. Мьютексы создаются лениво и удаляются, когда последний
// владелец освобождает ключ.
//
// Используется как in-process реализация эксклюзивной блокировки мастера
// при подтверждении записи. Для multi-instance деплоя заменяется на
// блокировку уровня БД (SELECT ... FOR UPDATE) или распределённый лок
// за тем же интерфейсом.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// New создает новый KeyLock
func New() *KeyLock {
	return &KeyLock{locks: make(map[string]*lockEntry)}
}

// Acquire захватывает эксклюзивную блокировку по ключу.
// Блокируется, пока ключ занят другим владельцем.
// Возвращаемая функция освобождает блокировку; вызывать её ровно один раз.
func (l *KeyLock) Acquire(key string) (release func()) {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &lockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
