package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore/draftstore"
)

// TTLConfig время жизни черновиков по каналам бронирования
type TTLConfig struct {
	Direct    time.Duration
	SmsOTP    time.Duration
	Telegram  time.Duration
	QuickAuth time.Duration
}

// TTLFor возвращает время жизни черновика для канала
func (c TTLConfig) TTLFor(source domain.DraftSource) time.Duration {
	switch source {
	case domain.SourceSmsOTP:
		return c.SmsOTP
	case domain.SourceTelegramOTP:
		return c.Telegram
	case domain.SourceQuickAuth:
		return c.QuickAuth
	default:
		return c.Direct
	}
}

// CreateParams параметры создания черновика
type CreateParams struct {
	Source    domain.DraftSource
	ServiceID int64
	MasterID  int64
	StartAt   time.Time
	EndAt     time.Time

	Name  string
	Phone string
	Email string

	TelegramChatID *int64
	ExternalUserID *string
}

// Service управляет жизненным циклом черновиков бронирования:
// Created → Verified → Promoted, либо Expired по TTL.
// Черновики всех каналов (direct, sms_otp, telegram_otp, quick_auth)
// сводятся к единой форме domain.Draft.
type Service struct {
	store        DraftStore
	ttl          TTLConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый сервис черновиков
func NewService(store DraftStore, ttl TTLConfig, logger Logger) *Service {
	return &Service{
		store:        store,
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает черновик бронирования.
// Поля слота фиксируются навсегда; контакты могут дозаполняться позже.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domain.Draft, error) {
	if !params.Source.IsKnown() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, params.Source)
	}

	now := s.timeProvider.Now()
	draft := &domain.Draft{
		ID:             uuid.NewString(),
		Source:         params.Source,
		ServiceID:      params.ServiceID,
		MasterID:       params.MasterID,
		StartAt:        params.StartAt.UTC(),
		EndAt:          params.EndAt.UTC(),
		Name:           params.Name,
		Phone:          params.Phone,
		Email:          params.Email,
		TelegramChatID: params.TelegramChatID,
		ExternalUserID: params.ExternalUserID,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.ttl.TTLFor(params.Source)),
	}

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("%w: save draft: %v", ErrInternal, err)
	}

	s.logger.Info("Drafts: created draft id=%s source=%s master=%d service=%d start=%s",
		draft.ID, draft.Source, draft.MasterID, draft.ServiceID, draft.StartAt.Format(time.RFC3339))

	return draft, nil
}

// Get возвращает черновик.
// Просроченный черновик считается несуществующим с точки зрения флоу,
// но отличим по ошибке: клиенту нужно начать бронирование заново.
func (s *Service) Get(ctx context.Context, draftID string) (*domain.Draft, error) {
	draft, err := s.store.Get(ctx, draftID)
	if errors.Is(err, draftstore.ErrDraftNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get draft: %v", ErrInternal, err)
	}

	// TTL бэкенда — основной механизм, проверка здесь ловит гонку
	// на границе истечения
	if draft.IsExpired(s.timeProvider.Now()) {
		return nil, ErrDraftExpired
	}

	return draft, nil
}

// UpdateContact дозаполняет контактные данные черновика.
// Допустимо только до завершения верификации; пустые значения
// не затирают уже известные контакты.
func (s *Service) UpdateContact(ctx context.Context, draftID, name, phone, email string) (*domain.Draft, error) {
	draft, err := s.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if draft.Verified {
		return nil, ErrAlreadyVerified
	}

	if name != "" {
		draft.Name = name
	}
	if phone != "" {
		draft.Phone = phone
	}
	if email != "" {
		draft.Email = email
	}

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("%w: save draft: %v", ErrInternal, err)
	}

	return draft, nil
}

// MarkVerified помечает черновик верифицированным и фиксирует канал
// и контакт, которыми прошла верификация. Код может быть выписан не на
// канал источника (например, email вместо sms), поэтому для гашения
// кода при промоушене нужна именно фактическая пара (канал, контакт).
func (s *Service) MarkVerified(ctx context.Context, draftID string, method domain.VerifyMethod, contact string) error {
	draft, err := s.Get(ctx, draftID)
	if err != nil {
		return err
	}

	if draft.Verified {
		return nil
	}

	draft.Verified = true
	draft.VerifiedVia = method
	draft.VerifiedContact = contact
	if err := s.store.Save(ctx, draft); err != nil {
		return fmt.Errorf("%w: save draft: %v", ErrInternal, err)
	}

	s.logger.Info("Drafts: draft id=%s verified via %s", draftID, method)
	return nil
}

// AttachAppointment привязывает созданную запись к черновику.
// Черновик не удаляется до истечения TTL: по нему идемпотентно
// отвечаем на повторные сабмиты клиента.
func (s *Service) AttachAppointment(ctx context.Context, draftID string, appointmentID int64) error {
	draft, err := s.Get(ctx, draftID)
	if err != nil {
		return err
	}

	if draft.AppointmentID != nil {
		if *draft.AppointmentID == appointmentID {
			return nil
		}
		return ErrAlreadyPromoted
	}

	draft.AppointmentID = &appointmentID
	if err := s.store.Save(ctx, draft); err != nil {
		return fmt.Errorf("%w: save draft: %v", ErrInternal, err)
	}

	s.logger.Info("Drafts: draft id=%s promoted to appointment id=%d", draftID, appointmentID)
	return nil
}

// Delete удаляет черновик (рестарт флоу по инициативе клиента)
func (s *Service) Delete(ctx context.Context, draftID string) error {
	if err := s.store.Delete(ctx, draftID); err != nil {
		return fmt.Errorf("%w: delete draft: %v", ErrInternal, err)
	}
	return nil
}
