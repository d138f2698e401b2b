package drafts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore/draftstore"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time {
	return f.now
}

func testTTL() TTLConfig {
	return TTLConfig{
		Direct:    30 * time.Minute,
		SmsOTP:    15 * time.Minute,
		Telegram:  15 * time.Minute,
		QuickAuth: 30 * time.Minute,
	}
}

func newTestService() *Service {
	return NewService(draftstore.New(kvstore.NewMemoryStore()), testTTL(), nopLogger{})
}

func mustCreate(t *testing.T, svc *Service, source domain.DraftSource) *domain.Draft {
	t.Helper()
	draft, err := svc.Create(context.Background(), CreateParams{
		Source:    source,
		ServiceID: 1,
		MasterID:  3,
		StartAt:   time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
		Name:      "Анна",
	})
	require.NoError(t, err)
	return draft
}

func TestService_CreateAndGet(t *testing.T) {
	svc := newTestService()

	draft := mustCreate(t, svc, domain.SourceSmsOTP)
	assert.NotEmpty(t, draft.ID)
	assert.Equal(t, 15*time.Minute, draft.ExpiresAt.Sub(draft.CreatedAt))

	got, err := svc.Get(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
	assert.Equal(t, int64(3), got.MasterID)
	assert.False(t, got.Verified)
}

func TestService_Create_TTLPerSource(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		source domain.DraftSource
		ttl    time.Duration
	}{
		{domain.SourceDirect, 30 * time.Minute},
		{domain.SourceSmsOTP, 15 * time.Minute},
		{domain.SourceTelegramOTP, 15 * time.Minute},
		{domain.SourceQuickAuth, 30 * time.Minute},
	}

	for _, tt := range tests {
		draft := mustCreate(t, svc, tt.source)
		assert.Equal(t, tt.ttl, draft.ExpiresAt.Sub(draft.CreatedAt), "source %s", tt.source)
	}
}

func TestService_Create_UnknownSource(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), CreateParams{Source: domain.DraftSource("fax")})
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestService_Get_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestService_Get_Expired(t *testing.T) {
	svc := newTestService()
	clock := &fakeTime{now: time.Now()}
	svc.timeProvider = clock

	draft := mustCreate(t, svc, domain.SourceDirect)

	// Бэкенд еще хранит запись, но срок по ExpiresAt уже истек
	clock.now = draft.ExpiresAt.Add(time.Second)

	_, err := svc.Get(context.Background(), draft.ID)
	assert.ErrorIs(t, err, ErrDraftExpired)
}

func TestService_UpdateContact(t *testing.T) {
	svc := newTestService()
	draft := mustCreate(t, svc, domain.SourceSmsOTP)

	updated, err := svc.UpdateContact(context.Background(), draft.ID, "", "+79211234567", "")
	require.NoError(t, err)
	assert.Equal(t, "+79211234567", updated.Phone)
	assert.Equal(t, "Анна", updated.Name)

	// Пустые значения не затирают уже известные контакты
	updated, err = svc.UpdateContact(context.Background(), draft.ID, "", "", "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, "+79211234567", updated.Phone)
	assert.Equal(t, "anna@example.com", updated.Email)
}

func TestService_UpdateContact_AfterVerification(t *testing.T) {
	svc := newTestService()
	draft := mustCreate(t, svc, domain.SourceSmsOTP)

	require.NoError(t, svc.MarkVerified(context.Background(), draft.ID, domain.MethodSMS, "+79211234567"))

	_, err := svc.UpdateContact(context.Background(), draft.ID, "", "+79210000000", "")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestService_MarkVerified_RecordsChannel(t *testing.T) {
	svc := newTestService()
	draft := mustCreate(t, svc, domain.SourceSmsOTP)

	require.NoError(t, svc.MarkVerified(context.Background(), draft.ID, domain.MethodEmail, "anna@example.com"))

	got, err := svc.Get(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)
	assert.Equal(t, domain.MethodEmail, got.VerifiedVia)
	assert.Equal(t, "anna@example.com", got.VerifiedContact)
}

func TestService_MarkVerified_Idempotent(t *testing.T) {
	svc := newTestService()
	draft := mustCreate(t, svc, domain.SourceSmsOTP)

	require.NoError(t, svc.MarkVerified(context.Background(), draft.ID, domain.MethodSMS, "+79211234567"))
	require.NoError(t, svc.MarkVerified(context.Background(), draft.ID, domain.MethodTelegram, "445566"))

	got, err := svc.Get(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.True(t, got.Verified)

	// Повторная верификация не переписывает зафиксированный канал
	assert.Equal(t, domain.MethodSMS, got.VerifiedVia)
	assert.Equal(t, "+79211234567", got.VerifiedContact)
}

func TestService_AttachAppointment(t *testing.T) {
	svc := newTestService()
	draft := mustCreate(t, svc, domain.SourceDirect)

	require.NoError(t, svc.AttachAppointment(context.Background(), draft.ID, 101))

	// Идемпотентный повтор с тем же id
	require.NoError(t, svc.AttachAppointment(context.Background(), draft.ID, 101))

	// Другая запись к тому же черновику не привязывается
	err := svc.AttachAppointment(context.Background(), draft.ID, 102)
	assert.ErrorIs(t, err, ErrAlreadyPromoted)

	got, err := svc.Get(context.Background(), draft.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AppointmentID)
	assert.Equal(t, int64(101), *got.AppointmentID)
}

func TestService_Delete(t *testing.T) {
	svc := newTestService()
	draft := mustCreate(t, svc, domain.SourceDirect)

	require.NoError(t, svc.Delete(context.Background(), draft.ID))

	_, err := svc.Get(context.Background(), draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
