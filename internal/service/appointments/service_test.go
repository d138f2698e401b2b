package appointments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/infra/storage/appointment"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	appointments map[int64]*domain.Appointment
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	appt, ok := f.appointments[id]
	if !ok {
		return appointment.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

func TestService_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.AppointmentStatus
		wantErr error
	}{
		{name: "pending can be canceled", status: domain.StatusPending},
		{name: "confirmed can be canceled", status: domain.StatusConfirmed},
		{name: "done cannot be canceled", status: domain.StatusDone, wantErr: ErrCannotCancel},
		{name: "canceled cannot be canceled again", status: domain.StatusCanceled, wantErr: ErrCannotCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
				1: {ID: 1, Status: tt.status},
			}}
			svc := NewService(repo, nopLogger{})

			err := svc.Cancel(context.Background(), 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, repo.appointments[1].Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.StatusCanceled, repo.appointments[1].Status)
		})
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{appointments: map[int64]*domain.Appointment{}}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
