package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore/otpstore"
	"github.com/aknyshev/salon-booking-engine/internal/integrations/notifier"
)

// VerifyResult результат проверки одноразового кода
type VerifyResult string

const (
	VerifyOK       VerifyResult = "ok"
	VerifyMismatch VerifyResult = "mismatch"
	VerifyExpired  VerifyResult = "expired"
)

// PollStatus статус поллинга out-of-band подтверждения
type PollStatus string

const (
	PollConfirmed PollStatus = "confirmed"
	PollPending   PollStatus = "pending"
	PollExpired   PollStatus = "expired"
)

// Service верификация черновиков одноразовыми кодами.
// Поддерживает два сценария: ввод кода клиентом (sms/email) и
// out-of-band подтверждение «нажатием кнопки» (callback телеграм-бота)
// с поллингом статуса со стороны клиента.
type Service struct {
	otp        OTPStore
	drafts     DraftService
	notifier   NotifierClient
	metrics    Metrics
	logger     Logger
	codeTTL    time.Duration
	codeLength int
}

// NewService создает новый сервис верификации
func NewService(
	otp OTPStore,
	drafts DraftService,
	notifierClient NotifierClient,
	metrics Metrics,
	logger Logger,
	codeTTL time.Duration,
	codeLength int,
) *Service {
	if codeLength <= 0 {
		codeLength = domain.DefaultOTPCodeLength
	}
	return &Service{
		otp:        otp,
		drafts:     drafts,
		notifier:   notifierClient,
		metrics:    metrics,
		logger:     logger,
		codeTTL:    codeTTL,
		codeLength: codeLength,
	}
}

// IssueCode генерирует и отправляет одноразовый код.
// Повторный вызов перезаписывает предыдущий код для той же тройки
// (метод, контакт, черновик). Контакт черновика для метода
// синхронизируется с контактом кода: телефон часто появляется именно
// на этом шаге, а выписанный на другой номер код меняет и черновик.
func (s *Service) IssueCode(ctx context.Context, method domain.VerifyMethod, contact, draftID string) error {
	if !method.IsKnown() {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return err
	}

	if contact == "" {
		contact = draft.Contact(method)
	}
	if contact == "" {
		return ErrNoContact
	}

	// Контакт черновика всегда совпадает с контактом, на который
	// выписан код; после верификации контакт неизменяем
	switch method {
	case domain.MethodSMS:
		if draft.Phone != contact {
			if _, err := s.drafts.UpdateContact(ctx, draftID, "", contact, ""); err != nil {
				return err
			}
		}
	case domain.MethodEmail:
		if draft.Email != contact {
			if _, err := s.drafts.UpdateContact(ctx, draftID, "", "", contact); err != nil {
				return err
			}
		}
	}

	code, err := s.generateCode()
	if err != nil {
		return fmt.Errorf("%w: generate code: %v", ErrInternal, err)
	}

	if err := s.otp.Save(ctx, method, contact, draftID, code, s.codeTTL); err != nil {
		return fmt.Errorf("%w: save code: %v", ErrInternal, err)
	}

	s.metrics.IncOTPIssued(string(method))
	s.logger.Info("Verification: code issued method=%s draft=%s", method, draftID)

	// Fire-and-forget: ошибка доставки логируется, код остаётся валидным,
	// клиент может запросить повторную отправку
	if err := s.notifier.SendCode(ctx, notifier.CodeMessage{
		Method:  string(method),
		Contact: contact,
		Code:    code,
	}); err != nil {
		s.logger.Error("Verification: failed to send code method=%s draft=%s: %v", method, draftID, err)
	}

	return nil
}

// VerifyCode проверяет код, введённый клиентом.
// Неверный код можно вводить повторно до истечения TTL.
// Успешная проверка помечает черновик верифицированным; сам код
// остаётся до промоушена, где будет удалён.
func (s *Service) VerifyCode(ctx context.Context, method domain.VerifyMethod, contact, draftID, code string) (VerifyResult, error) {
	if !method.IsKnown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	ok, err := s.otp.Verify(ctx, method, contact, draftID, code)
	if errors.Is(err, otpstore.ErrCodeNotFound) {
		s.metrics.IncOTPVerified(string(method), string(VerifyExpired))
		return VerifyExpired, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: verify code: %v", ErrInternal, err)
	}

	if !ok {
		s.metrics.IncOTPVerified(string(method), string(VerifyMismatch))
		s.logger.Warn("Verification: code mismatch method=%s draft=%s", method, draftID)
		return VerifyMismatch, nil
	}

	if err := s.drafts.MarkVerified(ctx, draftID, method, contact); err != nil {
		return "", err
	}

	s.metrics.IncOTPVerified(string(method), string(VerifyOK))
	s.logger.Info("Verification: draft=%s verified via %s", draftID, method)
	return VerifyOK, nil
}

// ConfirmOutOfBand подтверждает код без ввода — каналом «нажатия кнопки»
// (например, callback телеграм-бота). externalActorID идентифицирует
// подтвердившего актора и пишется в лог для аудита.
func (s *Service) ConfirmOutOfBand(ctx context.Context, method domain.VerifyMethod, contact, draftID, externalActorID string) error {
	if !method.IsKnown() {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	err := s.otp.Confirm(ctx, method, contact, draftID)
	if errors.Is(err, otpstore.ErrCodeNotFound) {
		return ErrCodeExpired
	}
	if err != nil {
		return fmt.Errorf("%w: confirm code: %v", ErrInternal, err)
	}

	if err := s.drafts.MarkVerified(ctx, draftID, method, contact); err != nil {
		return err
	}

	s.metrics.IncOTPVerified(string(method), string(VerifyOK))
	s.logger.Info("Verification: draft=%s confirmed out-of-band via %s by actor=%s", draftID, method, externalActorID)
	return nil
}

// Poll возвращает статус out-of-band подтверждения для поллинга клиентом
func (s *Service) Poll(ctx context.Context, method domain.VerifyMethod, contact, draftID string) (PollStatus, error) {
	if !method.IsKnown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	confirmed, err := s.otp.IsConfirmed(ctx, method, contact, draftID)
	if errors.Is(err, otpstore.ErrCodeNotFound) {
		return PollExpired, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: poll confirmation: %v", ErrInternal, err)
	}

	if confirmed {
		return PollConfirmed, nil
	}
	return PollPending, nil
}

// generateCode генерирует числовой код заданной длины
func (s *Service) generateCode() (string, error) {
	code := make([]byte, s.codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}
