package kvstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore in-process TTL key-value хранилище.
// Просроченные ключи вычищаются лениво при чтении; опционально можно
// включить фоновую уборку через WithSweep для долгоживущих процессов
// с редкими чтениями.
//
// Состояние живёт только в памяти процесса — пригодно исключительно для
// single-instance деплоя и тестов.
type MemoryStore struct {
	mu      sync.RWMutex
	items   map[string]memoryEntry
	now     func() time.Time
	stopCh  chan struct{}
	stopped sync.Once
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore создает пустое in-process хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:  make(map[string]memoryEntry),
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
}

// WithSweep включает фоновую уборку просроченных ключей с заданным
// интервалом. Возвращает само хранилище для чейнинга.
func (s *MemoryStore) WithSweep(interval time.Duration) *MemoryStore {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopCh:
				return
			}
		}
	}()
	return s
}

// Stop останавливает фоновую уборку, если она была включена
func (s *MemoryStore) Stop() {
	s.stopped.Do(func() { close(s.stopCh) })
}

// Save сохраняет значение с TTL, перезаписывая существующее
func (s *MemoryStore) Save(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = memoryEntry{value: stored, expiresAt: s.now().Add(ttl)}
	return nil
}

// Get возвращает значение или ErrKeyNotFound.
// Просроченный ключ удаляется при чтении.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.items, key)
		return nil, ErrKeyNotFound
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

// Delete удаляет ключ
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *MemoryStore) sweep() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.items {
		if now.After(entry.expiresAt) {
			delete(s.items, key)
		}
	}
}
