package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/infra/storage/appointment"
)

// Service операции над подтвержденными и ожидающими записями.
// Создание записей живет в промоушене черновика, здесь — чтение
// и отмена.
type Service struct {
	repo   AppointmentRepository
	logger Logger
}

// NewService создает новый сервис записей
func NewService(repo AppointmentRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByID возвращает запись по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, appointment.ErrAppointmentNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get appointment: %v", ErrInternal, err)
	}
	return appt, nil
}

// Cancel отменяет запись. Отменить можно только запись в статусе
// pending или confirmed; повторная отмена возвращает ErrCannotCancel.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !appt.CanBeCanceled() {
		return fmt.Errorf("%w: status %s", ErrCannotCancel, appt.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.StatusCanceled); err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("%w: cancel appointment: %v", ErrInternal, err)
	}

	s.logger.Info("Appointments: appointment %d canceled", id)
	return nil
}
