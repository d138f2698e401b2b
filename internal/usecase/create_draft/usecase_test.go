package create_draft

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore"
	"github.com/aknyshev/salon-booking-engine/internal/infra/kvstore/draftstore"
	serviceRepo "github.com/aknyshev/salon-booking-engine/internal/infra/storage/service"
	"github.com/aknyshev/salon-booking-engine/internal/service/drafts"
	"github.com/aknyshev/salon-booking-engine/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeAppointments struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointments) GetBlockingInRange(_ context.Context, masterID *int64, from, to time.Time) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range f.appointments {
		if !appt.IsBlocking() {
			continue
		}
		if masterID != nil && appt.MasterID != *masterID {
			continue
		}
		if appt.Overlaps(from, to) {
			result = append(result, appt)
		}
	}
	return result, nil
}

type fakeServices struct {
	services map[int64]*domain.Service
}

func (f *fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

func activeService() *fakeServices {
	return &fakeServices{services: map[int64]*domain.Service{
		1: {ID: 1, Name: "Маникюр", DurationMinutes: 30, IsActive: true},
	}}
}

func newUseCase(appts *fakeAppointments, svcs *fakeServices) (*UseCase, *drafts.Service) {
	draftService := drafts.NewService(
		draftstore.New(kvstore.NewMemoryStore()),
		drafts.TTLConfig{Direct: 30 * time.Minute, SmsOTP: 15 * time.Minute},
		nopLogger{},
	)
	return NewUseCase(appts, svcs, draftService, metrics.NewNop(), nopLogger{}), draftService
}

func validRequest() *Request {
	return &Request{
		Source:    string(domain.SourceDirect),
		ServiceID: 1,
		MasterID:  3,
		StartAt:   time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
		Name:      "Анна",
		Phone:     "+79211234567",
	}
}

func TestExecute(t *testing.T) {
	uc, draftService := newUseCase(&fakeAppointments{}, activeService())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.DraftID)
	assert.False(t, resp.ExpiresAt.IsZero())

	draft, err := draftService.Get(context.Background(), resp.DraftID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), draft.MasterID)
	assert.Equal(t, "+79211234567", draft.Phone)
	assert.False(t, draft.Verified)
}

func TestExecute_SlotTaken(t *testing.T) {
	uc, _ := newUseCase(&fakeAppointments{appointments: []*domain.Appointment{
		{
			MasterID: 3,
			StartAt:  time.Date(2026, 3, 9, 10, 15, 0, 0, time.UTC),
			EndAt:    time.Date(2026, 3, 9, 10, 45, 0, 0, time.UTC),
			Status:   domain.StatusConfirmed,
		},
	}}, activeService())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_OtherMasterDoesNotConflict(t *testing.T) {
	uc, _ := newUseCase(&fakeAppointments{appointments: []*domain.Appointment{
		{
			MasterID: 8,
			StartAt:  time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
			EndAt:    time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC),
			Status:   domain.StatusConfirmed,
		},
	}}, activeService())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc, _ := newUseCase(&fakeAppointments{}, &fakeServices{services: map[int64]*domain.Service{}})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveService(t *testing.T) {
	uc, _ := newUseCase(&fakeAppointments{}, &fakeServices{services: map[int64]*domain.Service{
		1: {ID: 1, Name: "Маникюр", DurationMinutes: 30, IsActive: false},
	}})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newUseCase(&fakeAppointments{}, activeService())

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "unknown source", mutate: func(req *Request) { req.Source = "fax" }},
		{name: "zero serviceID", mutate: func(req *Request) { req.ServiceID = 0 }},
		{name: "zero masterID", mutate: func(req *Request) { req.MasterID = 0 }},
		{name: "zero start", mutate: func(req *Request) { req.StartAt = time.Time{} }},
		{name: "end before start", mutate: func(req *Request) {
			req.EndAt = req.StartAt.Add(-10 * time.Minute)
		}},
		{name: "end equals start", mutate: func(req *Request) { req.EndAt = req.StartAt }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
