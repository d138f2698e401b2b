package create_draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	serviceRepo "github.com/aknyshev/salon-booking-engine/internal/infra/storage/service"
	"github.com/aknyshev/salon-booking-engine/internal/service/drafts"
)

// UseCase use case создания черновика бронирования
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	draftService    DraftService
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepository ServiceRepository,
	draftService DraftService,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepository,
		draftService:    draftService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания черновика
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateDraft: source=%s service=%d master=%d start=%s",
		req.Source, req.ServiceID, req.MasterID, req.StartAt.Format(domain.TimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateDraft: validation failed: %v", err)
		return nil, err
	}

	// 2. Услуга должна существовать и быть активной
	svc, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if errors.Is(err, serviceRepo.ErrServiceNotFound) {
		uc.logger.Warn("CreateDraft: service id=%d not found", req.ServiceID)
		return nil, ErrServiceNotFound
	}
	if err != nil {
		uc.logger.Error("CreateDraft: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !svc.IsActive {
		uc.logger.Warn("CreateDraft: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Ранняя проверка конфликта. Слот мог быть занят между показом
	// слотов и сабмитом; сообщаем об этом сразу, не заставляя клиента
	// проходить верификацию впустую. Без блокировки — гонку закрывает
	// повторная проверка при промоушене.
	blocking, err := uc.appointmentRepo.GetBlockingInRange(ctx, &req.MasterID, req.StartAt, req.EndAt)
	if err != nil {
		uc.logger.Error("CreateDraft: failed to check conflicts: %v", err)
		return nil, fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
	}
	if len(blocking) > 0 {
		uc.logger.Warn("CreateDraft: slot %s already taken for master=%d",
			req.StartAt.Format(domain.TimeFormat), req.MasterID)
		return nil, ErrSlotTaken
	}

	// 4. Создаем черновик
	draft, err := uc.draftService.Create(ctx, drafts.CreateParams{
		Source:         domain.DraftSource(req.Source),
		ServiceID:      req.ServiceID,
		MasterID:       req.MasterID,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		TelegramChatID: req.TelegramChatID,
		ExternalUserID: req.ExternalUserID,
	})
	if err != nil {
		uc.logger.Error("CreateDraft: failed to create draft: %v", err)
		return nil, fmt.Errorf("%w: failed to create draft: %v", ErrInternal, err)
	}

	uc.metrics.IncDraftCreated(req.Source)

	return &Response{
		DraftID:   draft.ID,
		ExpiresAt: draft.ExpiresAt,
	}, nil
}
