package otpstore

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore"
)

// Entry запись одноразового кода
type Entry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Confirmed bool      `json:"confirmed"`
}

// Store хранилище одноразовых кодов поверх TTL key-value стора.
// Ключ — тройка (метод доставки, контакт, ID черновика): один активный
// код на контакт в рамках одного черновика, повторная выдача перезаписывает.
type Store struct {
	kv kvstore.Store
}

// New создает хранилище одноразовых кодов
func New(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

func key(method domain.VerifyMethod, contact, draftID string) string {
	return fmt.Sprintf("otp:%s:%s:%s", method, contact, draftID)
}

// Save сохраняет код с TTL, перезаписывая предыдущий код для этого ключа
func (s *Store) Save(ctx context.Context, method domain.VerifyMethod, contact, draftID, code string, ttl time.Duration) error {
	entry := Entry{
		Code:      code,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return s.kv.Save(ctx, key(method, contact, draftID), data, ttl)
}

// Get возвращает запись кода или ErrCodeNotFound, если она отсутствует
// либо просрочена. Просроченная запись вычищается при чтении.
func (s *Store) Get(ctx context.Context, method domain.VerifyMethod, contact, draftID string) (*Entry, error) {
	k := key(method, contact, draftID)

	data, err := s.kv.Get(ctx, k)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	// Подстраховка для бэкендов без нативного TTL: срок хранится и в записи
	if time.Now().After(entry.ExpiresAt) {
		_ = s.kv.Delete(ctx, k)
		return nil, ErrCodeNotFound
	}

	return &entry, nil
}

// Verify сравнивает код с сохранённым. Чистое сравнение: признак
// confirmed не меняется.
func (s *Store) Verify(ctx context.Context, method domain.VerifyMethod, contact, draftID, code string) (bool, error) {
	entry, err := s.Get(ctx, method, contact, draftID)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) == 1, nil
}

// Confirm помечает код подтверждённым. Используется каналами с
// подтверждением «нажатием кнопки» (callback бота), где сам код
// клиент не вводит.
func (s *Store) Confirm(ctx context.Context, method domain.VerifyMethod, contact, draftID string) error {
	entry, err := s.Get(ctx, method, contact, draftID)
	if err != nil {
		return err
	}

	entry.Confirmed = true

	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return ErrCodeNotFound
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return s.kv.Save(ctx, key(method, contact, draftID), data, ttl)
}

// IsConfirmed возвращает признак подтверждения для клиентского поллинга
func (s *Store) IsConfirmed(ctx context.Context, method domain.VerifyMethod, contact, draftID string) (bool, error) {
	entry, err := s.Get(ctx, method, contact, draftID)
	if err != nil {
		return false, err
	}
	return entry.Confirmed, nil
}

// Delete удаляет код. Вызывается при подтверждении записи: код
// строго одноразовый, повторное использование после промоушена невозможно.
func (s *Store) Delete(ctx context.Context, method domain.VerifyMethod, contact, draftID string) error {
	return s.kv.Delete(ctx, key(method, contact, draftID))
}
