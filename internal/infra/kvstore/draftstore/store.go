package draftstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore"
)

const keyPrefix = "draft:"

// Store хранилище черновиков бронирования поверх TTL key-value стора.
// TTL записи привязан к ExpiresAt черновика, поэтому бэкенд сам
// перестает отдавать просроченные черновики.
type Store struct {
	kv kvstore.Store
}

// New создает хранилище черновиков
func New(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// draftRecord сериализуемое представление черновика
type draftRecord struct {
	ID              string    `json:"id"`
	Source          string    `json:"source"`
	ServiceID       int64     `json:"service_id"`
	MasterID        int64     `json:"master_id"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	Name            string    `json:"name,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty"`
	TelegramChatID  *int64    `json:"telegram_chat_id,omitempty"`
	ExternalUserID  *string   `json:"external_user_id,omitempty"`
	Verified        bool      `json:"verified"`
	VerifiedVia     string    `json:"verified_via,omitempty"`
	VerifiedContact string    `json:"verified_contact,omitempty"`
	AppointmentID   *int64    `json:"appointment_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Save сохраняет черновик с TTL до его ExpiresAt
func (s *Store) Save(ctx context.Context, draft *domain.Draft) error {
	ttl := time.Until(draft.ExpiresAt)
	if ttl <= 0 {
		return ErrDraftNotFound
	}

	data, err := json.Marshal(toRecord(draft))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return s.kv.Save(ctx, keyPrefix+draft.ID, data, ttl)
}

// Get возвращает черновик по ID или ErrDraftNotFound
func (s *Store) Get(ctx context.Context, draftID string) (*domain.Draft, error) {
	data, err := s.kv.Get(ctx, keyPrefix+draftID)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec draftRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return fromRecord(&rec), nil
}

// Delete удаляет черновик
func (s *Store) Delete(ctx context.Context, draftID string) error {
	return s.kv.Delete(ctx, keyPrefix+draftID)
}

func toRecord(d *domain.Draft) *draftRecord {
	return &draftRecord{
		ID:              d.ID,
		Source:          string(d.Source),
		ServiceID:       d.ServiceID,
		MasterID:        d.MasterID,
		StartAt:         d.StartAt,
		EndAt:           d.EndAt,
		Name:            d.Name,
		Phone:           d.Phone,
		Email:           d.Email,
		TelegramChatID:  d.TelegramChatID,
		ExternalUserID:  d.ExternalUserID,
		Verified:        d.Verified,
		VerifiedVia:     string(d.VerifiedVia),
		VerifiedContact: d.VerifiedContact,
		AppointmentID:   d.AppointmentID,
		CreatedAt:       d.CreatedAt,
		ExpiresAt:       d.ExpiresAt,
	}
}

func fromRecord(rec *draftRecord) *domain.Draft {
	return &domain.Draft{
		ID:              rec.ID,
		Source:          domain.DraftSource(rec.Source),
		ServiceID:       rec.ServiceID,
		MasterID:        rec.MasterID,
		StartAt:         rec.StartAt,
		EndAt:           rec.EndAt,
		Name:            rec.Name,
		Phone:           rec.Phone,
		Email:           rec.Email,
		TelegramChatID:  rec.TelegramChatID,
		ExternalUserID:  rec.ExternalUserID,
		Verified:        rec.Verified,
		VerifiedVia:     domain.VerifyMethod(rec.VerifiedVia),
		VerifiedContact: rec.VerifiedContact,
		AppointmentID:   rec.AppointmentID,
		CreatedAt:       rec.CreatedAt,
		ExpiresAt:       rec.ExpiresAt,
	}
}
