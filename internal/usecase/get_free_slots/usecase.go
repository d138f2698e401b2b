package get_free_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	scheduleRepo "github.com/aknyshev/salon-booking-engine/internal/infra/storage/schedule"
	serviceRepo "github.com/aknyshev/salon-booking-engine/internal/infra/storage/service"
)

// Config параметры генерации слотов
type Config struct {
	StepMinutes   int // шаг дискретизации, по умолчанию 10 минут
	BufferMinutes int // продление конца записи (уборка места), по умолчанию 0
}

// UseCase use case получения свободных слотов.
// Запрос чисто читающий: два вызова при неизменном состоянии дают
// идентичные списки. Закрытый день, неизвестная услуга и некорректная
// дата/таймзона деградируют в пустой список, а не в ошибку.
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	serviceRepo     ServiceRepository
	config          Config
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepository ScheduleRepository,
	serviceRepository ServiceRepository,
	config Config,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if config.StepMinutes <= 0 {
		config.StepMinutes = domain.DefaultSlotStepMinutes
	}
	if config.BufferMinutes < 0 {
		config.BufferMinutes = domain.DefaultBufferMinutes
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepository,
		serviceRepo:     serviceRepository,
		config:          config,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeSlots: date=%s tz=%s service=%v duration=%v master=%v",
		req.Date, req.Timezone, req.ServiceID, req.DurationMinutes, req.MasterID)
	uc.metrics.IncSlotsQuery()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeSlots: validation failed: %v", err)
		return nil, err
	}

	empty := &Response{Date: req.Date, Timezone: req.Timezone, Slots: []Slot{}}

	// 2. Резолвим границы локального дня; мусорная дата/таймзона — пустой список
	day, ok := resolveDayRange(req.Date, req.Timezone)
	if !ok {
		uc.logger.Warn("GetFreeSlots: malformed date=%q or timezone=%q", req.Date, req.Timezone)
		return empty, nil
	}

	// 3. Определяем длительность слота
	duration, ok, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return empty, nil
	}

	// 4. Резолвим рабочее окно дня
	window, ok, err := uc.resolveWindow(ctx, day.Weekday, req.MasterID)
	if err != nil {
		return nil, err
	}
	if !ok || window.IsEmpty() {
		uc.logger.Info("GetFreeSlots: closed on %s for master=%v", req.Date, req.MasterID)
		return empty, nil
	}

	// 5. Собираем занятость: блокирующие записи + исключения расписания
	appointments, err := uc.appointmentRepo.GetBlockingInRange(ctx, req.MasterID, day.Start, day.End)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	timeOff, err := uc.scheduleRepo.GetTimeOff(ctx, day.Date, req.MasterID)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get time off: %v", err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	busy := buildBusyIntervals(day, window, appointments, timeOff, uc.config.BufferMinutes)

	// 6. Генерируем слоты
	slots := generateSlots(day, window, duration, uc.config.StepMinutes, busy)

	uc.logger.Info("GetFreeSlots: %d slots for date=%s master=%v", len(slots), req.Date, req.MasterID)

	return &Response{Date: req.Date, Timezone: req.Timezone, Slots: slots}, nil
}

// resolveDuration возвращает длительность слота: из услуги либо явную.
// Неизвестная или неактивная услуга дает ok == false (пустой список).
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, bool, error) {
	if req.ServiceID == nil {
		return *req.DurationMinutes, true, nil
	}

	svc, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
	if errors.Is(err, serviceRepo.ErrServiceNotFound) {
		uc.logger.Warn("GetFreeSlots: service id=%d not found", *req.ServiceID)
		return 0, false, nil
	}
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get service id=%d: %v", *req.ServiceID, err)
		return 0, false, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !svc.IsActive {
		uc.logger.Warn("GetFreeSlots: service id=%d is inactive", *req.ServiceID)
		return 0, false, nil
	}

	return svc.DurationMinutes, true, nil
}

// resolveWindow возвращает базовое рабочее окно дня.
// График мастера полностью заменяет общий: отсутствие строки для
// (мастер, день недели) означает выходной, к салонному графику
// фолбэка нет.
func (uc *UseCase) resolveWindow(ctx context.Context, weekday int, masterID *int64) (domain.MinuteInterval, bool, error) {
	if masterID != nil {
		hours, err := uc.scheduleRepo.GetMasterWorkingHours(ctx, *masterID, weekday)
		if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			return domain.MinuteInterval{}, false, nil
		}
		if err != nil {
			uc.logger.Error("GetFreeSlots: failed to get master working hours: %v", err)
			return domain.MinuteInterval{}, false, fmt.Errorf("%w: failed to get master working hours: %v", ErrInternal, err)
		}
		if hours.IsClosed {
			return domain.MinuteInterval{}, false, nil
		}
		return hours.Window(), true, nil
	}

	hours, err := uc.scheduleRepo.GetWorkingHours(ctx, weekday)
	if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
		return domain.MinuteInterval{}, false, nil
	}
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get working hours: %v", err)
		return domain.MinuteInterval{}, false, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	if hours.IsClosed {
		return domain.MinuteInterval{}, false, nil
	}
	return hours.Window(), true, nil
}
