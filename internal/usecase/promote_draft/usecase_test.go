package promote_draft

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore/draftstore"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore/otpstore"
	clientRepo "github.com/aknyshev/salon-booking-engine/internal/infra/storage/client"
	serviceRepo "github.com/aknyshev/salon-booking-engine/internal/infra/storage/service"
	"github.com/aknyshev/salon-booking-engine/internal/integrations/notifier"
	"github.com/aknyshev/salon-booking-engine/internal/service/drafts"
	"github.com/aknyshev/salon-booking-engine/pkg/keylock"
	"github.com/aknyshev/salon-booking-engine/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeAppointmentRepo намеренно не атомарен между проверкой пересечений
// и вставкой: сериализацию должен обеспечивать вызывающий код
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	nextID       int64
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetBlockingOverlapping(_ context.Context, masterID int64, from, to time.Time) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*domain.Appointment, 0)
	for _, appt := range f.appointments {
		if appt.MasterID == masterID && appt.IsBlocking() && appt.Overlaps(from, to) {
			result = append(result, appt)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	stored := *appt
	stored.ID = f.nextID
	f.appointments = append(f.appointments, &stored)
	return &stored, nil
}

func (f *fakeAppointmentRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appointments)
}

type fakeClientRepo struct {
	mu      sync.Mutex
	nextID  int64
	clients []*domain.Client
}

func (f *fakeClientRepo) FindByPhone(_ context.Context, phone string) (*domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.clients {
		if c.Phone != nil && *c.Phone == phone {
			return c, nil
		}
	}
	return nil, clientRepo.ErrClientNotFound
}

func (f *fakeClientRepo) FindByEmail(_ context.Context, email string) (*domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.clients {
		if c.Email != nil && *c.Email == email {
			return c, nil
		}
	}
	return nil, clientRepo.ErrClientNotFound
}

func (f *fakeClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	// Имитация сетевой задержки расширяет окно гонки между проверкой
	// пересечений и вставкой записи
	time.Sleep(time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	stored := *c
	stored.ID = f.nextID
	f.clients = append(f.clients, &stored)
	return &stored, nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

// passthroughTx вызывает fn без транзакции: атомарность в этих тестах
// обеспечивает keylock
type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notifier.AppointmentMessage
}

func (f *fakeNotifier) NotifyAppointment(_ context.Context, msg notifier.AppointmentMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

// trackingLocker отмечает, какие ключи удерживаются в данный момент
type trackingLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newTrackingLocker() *trackingLocker {
	return &trackingLocker{held: make(map[string]bool)}
}

func (l *trackingLocker) Acquire(key string) func() {
	l.mu.Lock()
	l.held[key] = true
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.held[key] = false
		l.mu.Unlock()
	}
}

func (l *trackingLocker) anyHeld() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, h := range l.held {
		if h {
			return true
		}
	}
	return false
}

// lockObservingNotifier фиксирует состояние блокировки в момент отправки
// уведомления
type lockObservingNotifier struct {
	locker       *trackingLocker
	notified     bool
	heldAtNotify bool
}

func (n *lockObservingNotifier) NotifyAppointment(_ context.Context, _ notifier.AppointmentMessage) error {
	n.notified = true
	n.heldAtNotify = n.locker.anyHeld()
	return nil
}

type fixture struct {
	uc           *UseCase
	apptRepo     *fakeAppointmentRepo
	clientRepo   *fakeClientRepo
	draftService *drafts.Service
	otpStore     *otpstore.Store
	notifier     *fakeNotifier
}

func newFixture() *fixture {
	apptRepo := &fakeAppointmentRepo{}
	clients := &fakeClientRepo{}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, Name: "Маникюр", DurationMinutes: 30, IsActive: true},
	}}
	draftService := drafts.NewService(
		draftstore.New(kvstore.NewMemoryStore()),
		drafts.TTLConfig{Direct: 30 * time.Minute, SmsOTP: 15 * time.Minute},
		nopLogger{},
	)
	otp := otpstore.New(kvstore.NewMemoryStore())
	sender := &fakeNotifier{}

	uc := NewUseCase(
		apptRepo,
		clients,
		services,
		draftService,
		otp,
		passthroughTx{},
		keylock.New(),
		sender,
		metrics.NewNop(),
		nopLogger{},
	)

	return &fixture{
		uc:           uc,
		apptRepo:     apptRepo,
		clientRepo:   clients,
		draftService: draftService,
		otpStore:     otp,
		notifier:     sender,
	}
}

func (f *fixture) createVerifiedDraft(t *testing.T, phone string) *domain.Draft {
	t.Helper()

	draft, err := f.draftService.Create(context.Background(), drafts.CreateParams{
		Source:    domain.SourceSmsOTP,
		ServiceID: 1,
		MasterID:  3,
		StartAt:   time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
		Name:      "Анна",
		Phone:     phone,
	})
	require.NoError(t, err)
	require.NoError(t, f.draftService.MarkVerified(context.Background(), draft.ID, domain.MethodSMS, phone))
	return draft
}

func TestExecute(t *testing.T) {
	f := newFixture()
	draft := f.createVerifiedDraft(t, "+79211234567")

	require.NoError(t, f.otpStore.Save(context.Background(),
		domain.MethodSMS, "+79211234567", draft.ID, "1234", 5*time.Minute))

	resp, err := f.uc.Execute(context.Background(), &Request{DraftID: draft.ID})
	require.NoError(t, err)
	assert.False(t, resp.AlreadyExisted)

	require.Equal(t, 1, f.apptRepo.count())
	created := f.apptRepo.appointments[0]
	assert.Equal(t, resp.AppointmentID, created.ID)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, int64(3), created.MasterID)
	assert.Equal(t, "Маникюр", created.ServiceName)
	assert.Equal(t, draft.StartAt, created.StartAt)

	// Черновик хранит ID записи для идемпотентных повторов
	stored, err := f.draftService.Get(context.Background(), draft.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AppointmentID)
	assert.Equal(t, resp.AppointmentID, *stored.AppointmentID)

	// Код одноразовый: после промоушена удален
	_, err = f.otpStore.Get(context.Background(), domain.MethodSMS, "+79211234567", draft.ID)
	assert.ErrorIs(t, err, otpstore.ErrCodeNotFound)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, resp.AppointmentID, f.notifier.sent[0].AppointmentID)
}

func TestExecute_Idempotent(t *testing.T) {
	f := newFixture()
	draft := f.createVerifiedDraft(t, "+79211234567")

	first, err := f.uc.Execute(context.Background(), &Request{DraftID: draft.ID})
	require.NoError(t, err)

	second, err := f.uc.Execute(context.Background(), &Request{DraftID: draft.ID})
	require.NoError(t, err)
	assert.True(t, second.AlreadyExisted)
	assert.Equal(t, first.AppointmentID, second.AppointmentID)

	assert.Equal(t, 1, f.apptRepo.count())
}

func TestExecute_NotVerified(t *testing.T) {
	f := newFixture()

	draft, err := f.draftService.Create(context.Background(), drafts.CreateParams{
		Source:    domain.SourceSmsOTP,
		ServiceID: 1,
		MasterID:  3,
		StartAt:   time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
		Phone:     "+79211234567",
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{DraftID: draft.ID})
	assert.ErrorIs(t, err, ErrDraftNotVerified)
	assert.Equal(t, 0, f.apptRepo.count())
}

func TestExecute_UnknownDraft(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{DraftID: "missing"})
	assert.ErrorIs(t, err, ErrRegistrationExpired)
	assert.Equal(t, 0, f.apptRepo.count())
}

func TestExecute_ExpiredDraft(t *testing.T) {
	f := newFixture()
	draft := f.createVerifiedDraft(t, "+79211234567")

	// Просрочка: удаляем из стора, как сделал бы TTL бэкенда
	require.NoError(t, f.draftService.Delete(context.Background(), draft.ID))

	_, err := f.uc.Execute(context.Background(), &Request{DraftID: draft.ID})
	assert.ErrorIs(t, err, ErrRegistrationExpired)
	assert.Equal(t, 0, f.apptRepo.count())
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture()

	_, err := f.apptRepo.Create(context.Background(), &domain.Appointment{
		MasterID: 3,
		StartAt:  time.Date(2026, 3, 9, 10, 15, 0, 0, time.UTC),
		EndAt:    time.Date(2026, 3, 9, 10, 45, 0, 0, time.UTC),
		Status:   domain.StatusConfirmed,
	})
	require.NoError(t, err)

	draft := f.createVerifiedDraft(t, "+79211234567")

	_, err = f.uc.Execute(context.Background(), &Request{DraftID: draft.ID})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 1, f.apptRepo.count())
}

func TestExecute_ReusesExistingClient(t *testing.T) {
	f := newFixture()

	existing, err := f.clientRepo.Create(context.Background(), &domain.Client{
		Name:  "Анна",
		Phone: strPtr("+79211234567"),
	})
	require.NoError(t, err)

	draft := f.createVerifiedDraft(t, "+79211234567")

	_, err = f.uc.Execute(context.Background(), &Request{DraftID: draft.ID})
	require.NoError(t, err)

	require.Equal(t, 1, f.apptRepo.count())
	assert.Equal(t, existing.ID, f.apptRepo.appointments[0].ClientID)
	assert.Len(t, f.clientRepo.clients, 1)
}

// N конкурирующих промоушенов разных черновиков на один слот одного
// мастера: ровно один успех, остальные получают конфликт
func TestExecute_ConcurrentPromotions(t *testing.T) {
	const n = 16

	f := newFixture()

	draftIDs := make([]string, n)
	for i := 0; i < n; i++ {
		draftIDs[i] = f.createVerifiedDraft(t, "+79211234567").ID
	}

	var wg sync.WaitGroup
	results := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.uc.Execute(context.Background(), &Request{DraftID: draftIDs[i]})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	conflicts := 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSlotTaken):
			conflicts++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, f.apptRepo.count())
}

// Блокировка мастера покрывает только перечитывание черновика, проверку
// конфликта и вставку; к моменту отправки уведомления она отпущена и не
// сериализует промоушены мастера за медленным сетевым вызовом
func TestExecute_LockReleasedBeforeNotify(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, Name: "Маникюр", DurationMinutes: 30, IsActive: true},
	}}
	draftService := drafts.NewService(
		draftstore.New(kvstore.NewMemoryStore()),
		drafts.TTLConfig{SmsOTP: 15 * time.Minute},
		nopLogger{},
	)
	locker := newTrackingLocker()
	sender := &lockObservingNotifier{locker: locker}

	uc := NewUseCase(
		apptRepo,
		&fakeClientRepo{},
		services,
		draftService,
		otpstore.New(kvstore.NewMemoryStore()),
		passthroughTx{},
		locker,
		sender,
		metrics.NewNop(),
		nopLogger{},
	)

	draft, err := draftService.Create(context.Background(), drafts.CreateParams{
		Source:    domain.SourceSmsOTP,
		ServiceID: 1,
		MasterID:  3,
		StartAt:   time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
		Name:      "Анна",
		Phone:     "+79211234567",
	})
	require.NoError(t, err)
	require.NoError(t, draftService.MarkVerified(context.Background(), draft.ID, domain.MethodSMS, "+79211234567"))

	_, err = uc.Execute(context.Background(), &Request{DraftID: draft.ID})
	require.NoError(t, err)

	require.True(t, sender.notified)
	assert.False(t, sender.heldAtNotify)
	assert.False(t, locker.anyHeld())
}

// Код гасится по каналу, которым фактически прошла верификация, даже
// если это не канал по умолчанию для источника черновика
func TestExecute_DeletesCodeOnVerifiedChannel(t *testing.T) {
	f := newFixture()

	draft, err := f.draftService.Create(context.Background(), drafts.CreateParams{
		Source:    domain.SourceSmsOTP,
		ServiceID: 1,
		MasterID:  3,
		StartAt:   time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
		Name:      "Анна",
		Phone:     "+79211234567",
		Email:     "anna@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, f.otpStore.Save(context.Background(),
		domain.MethodEmail, "anna@example.com", draft.ID, "1234", 5*time.Minute))
	require.NoError(t, f.draftService.MarkVerified(context.Background(),
		draft.ID, domain.MethodEmail, "anna@example.com"))

	_, err = f.uc.Execute(context.Background(), &Request{DraftID: draft.ID})
	require.NoError(t, err)

	_, err = f.otpStore.Get(context.Background(), domain.MethodEmail, "anna@example.com", draft.ID)
	assert.ErrorIs(t, err, otpstore.ErrCodeNotFound)
}

func strPtr(s string) *string { return &s }
