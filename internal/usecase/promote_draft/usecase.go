package promote_draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	clientRepo "github.com/aknyshev/salon-booking-engine/internal/infra/storage/client"
	serviceRepo "github.com/aknyshev/salon-booking-engine/internal/infra/storage/service"
	"github.com/aknyshev/salon-booking-engine/internal/integrations/notifier"
	"github.com/aknyshev/salon-booking-engine/internal/service/drafts"
	"github.com/aknyshev/salon-booking-engine/pkg/ptr"
)

// UseCase use case промоушена верифицированного черновика в запись.
// Критическая секция: проверка конфликта и вставка выполняются под
// блокировкой ресурса мастера и в одной транзакции, так что для
// одного мастера из N конкурирующих промоушенов на пересекающиеся
// интервалы выигрывает ровно один.
type UseCase struct {
	appointmentRepo AppointmentRepository
	clientRepo      ClientRepository
	serviceRepo     ServiceRepository
	draftService    DraftService
	otpStore        OTPStore
	txManager       TxManager
	locker          Locker
	notifier        NotifierClient
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	clientRepository ClientRepository,
	serviceRepository ServiceRepository,
	draftService DraftService,
	otpStore OTPStore,
	txManager TxManager,
	locker Locker,
	notifierClient NotifierClient,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepository,
		serviceRepo:     serviceRepository,
		draftService:    draftService,
		otpStore:        otpStore,
		txManager:       txManager,
		locker:          locker,
		notifier:        notifierClient,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case промоушена черновика
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PromoteDraft: draft=%s", req.DraftID)

	if req.DraftID == "" {
		return nil, fmt.Errorf("%w: draftID is required", ErrInvalidInput)
	}

	// 1. Загружаем черновик до блокировки: просроченный или чужой
	// draftID не должен создавать contention на ресурсе мастера
	draft, err := uc.getDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}

	// 2. Идемпотентность: повторный сабмит уже промоушенного черновика
	// возвращает существующую запись
	if draft.IsPromoted() {
		uc.logger.Info("PromoteDraft: draft=%s already promoted to appointment=%d",
			req.DraftID, *draft.AppointmentID)
		return &Response{AppointmentID: *draft.AppointmentID, AlreadyExisted: true}, nil
	}

	// 3. Промоушен допустим только из верифицированного состояния
	if !draft.Verified {
		uc.logger.Warn("PromoteDraft: draft=%s is not verified", req.DraftID)
		return nil, ErrDraftNotVerified
	}

	// 4. Критическая секция, скоуп — мастер. Под блокировкой только
	// перечитывание черновика, решающая проверка конфликта и вставка;
	// постобработка и уведомление выполняются после её освобождения
	draft, created, err := uc.promoteLocked(ctx, req.DraftID, draft.MasterID)
	if errors.Is(err, ErrSlotTaken) {
		uc.metrics.IncSlotConflict()
		uc.logger.Warn("PromoteDraft: slot taken for draft=%s", req.DraftID)
		return nil, ErrSlotTaken
	}
	if errors.Is(err, ErrRegistrationExpired) {
		return nil, err
	}
	if err != nil {
		uc.logger.Error("PromoteDraft: transaction failed for draft=%s: %v", req.DraftID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if created == nil {
		// Конкурирующий промоушен того же черновика успел первым
		return &Response{AppointmentID: *draft.AppointmentID, AlreadyExisted: true}, nil
	}

	// 5. Привязываем запись к черновику; черновик живет до своего TTL
	// и отвечает на повторные сабмиты идемпотентно
	if err := uc.draftService.AttachAppointment(ctx, req.DraftID, created.ID); err != nil {
		uc.logger.Error("PromoteDraft: failed to attach appointment=%d to draft=%s: %v",
			created.ID, req.DraftID, err)
	}

	// 6. Код одноразовый: после успешного промоушена удаляем
	uc.deleteOTP(ctx, draft)

	uc.metrics.IncAppointmentCreated()
	uc.logger.Info("PromoteDraft: draft=%s promoted to appointment=%d", req.DraftID, created.ID)

	// 7. Уведомление fire-and-forget, уже вне блокировки мастера
	if err := uc.notifier.NotifyAppointment(ctx, notifier.AppointmentMessage{
		AppointmentID: created.ID,
		MasterID:      created.MasterID,
		ServiceName:   created.ServiceName,
		StartAt:       created.StartAt,
		EndAt:         created.EndAt,
		ClientName:    draft.Name,
		ClientPhone:   draft.Phone,
		ClientEmail:   draft.Email,
	}); err != nil {
		uc.logger.Error("PromoteDraft: failed to notify about appointment=%d: %v", created.ID, err)
	}

	return &Response{AppointmentID: created.ID}, nil
}

// promoteLocked выполняет критическую секцию промоушена под блокировкой
// ресурса мастера: перечитывает черновик, проверяет конфликт и вставляет
// запись в одной транзакции. Возвращает (draft, nil, nil), если черновик
// уже промоушен конкурентом. Блокировка живет ровно до возврата.
func (uc *UseCase) promoteLocked(ctx context.Context, draftID string, masterID int64) (*domain.Draft, *domain.Appointment, error) {
	release := uc.locker.Acquire(fmt.Sprintf("master:%d", masterID))
	defer release()

	// Перечитываем под блокировкой: конкурирующий промоушен того же
	// черновика мог успеть первым
	draft, err := uc.getDraft(ctx, draftID)
	if err != nil {
		return nil, nil, err
	}
	if draft.IsPromoted() {
		return draft, nil, nil
	}

	var created *domain.Appointment
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		// Решающая проверка конфликта: блокирующие записи мастера
		// на пересекающийся интервал, строки залочены до конца транзакции
		blocking, err := uc.appointmentRepo.GetBlockingOverlapping(ctx, draft.MasterID, draft.StartAt, draft.EndAt)
		if err != nil {
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}
		if len(blocking) > 0 {
			return ErrSlotTaken
		}

		// Находим или создаем клиента
		client, err := uc.resolveClient(ctx, draft)
		if err != nil {
			return err
		}

		svc, err := uc.serviceRepo.GetByID(ctx, draft.ServiceID)
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			// Услуга проверялась при создании черновика; исчезнуть могла
			// только при удалении из каталога
			return fmt.Errorf("%w: service id=%d disappeared", ErrInternal, draft.ServiceID)
		}
		if err != nil {
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		// Создаем запись в статусе pending
		created, err = uc.appointmentRepo.Create(ctx, &domain.Appointment{
			MasterID:    draft.MasterID,
			ServiceID:   draft.ServiceID,
			ClientID:    client.ID,
			StartAt:     draft.StartAt,
			EndAt:       draft.EndAt,
			Status:      domain.StatusPending,
			ServiceName: svc.Name,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return draft, created, nil
}

// getDraft загружает черновик, сводя отсутствие и просрочку к единому
// сигналу рестарта флоу
func (uc *UseCase) getDraft(ctx context.Context, draftID string) (*domain.Draft, error) {
	draft, err := uc.draftService.Get(ctx, draftID)
	if errors.Is(err, drafts.ErrDraftNotFound) || errors.Is(err, drafts.ErrDraftExpired) {
		uc.logger.Warn("PromoteDraft: draft=%s not found or expired", draftID)
		return nil, ErrRegistrationExpired
	}
	if err != nil {
		uc.logger.Error("PromoteDraft: failed to get draft=%s: %v", draftID, err)
		return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
	}
	return draft, nil
}

// resolveClient находит клиента по телефону, затем по email;
// не найден — создает нового
func (uc *UseCase) resolveClient(ctx context.Context, draft *domain.Draft) (*domain.Client, error) {
	if draft.Phone != "" {
		client, err := uc.clientRepo.FindByPhone(ctx, draft.Phone)
		if err == nil {
			return client, nil
		}
		if !errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, fmt.Errorf("%w: failed to find client by phone: %v", ErrInternal, err)
		}
	}

	if draft.Email != "" {
		client, err := uc.clientRepo.FindByEmail(ctx, draft.Email)
		if err == nil {
			return client, nil
		}
		if !errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, fmt.Errorf("%w: failed to find client by email: %v", ErrInternal, err)
		}
	}

	newClient := &domain.Client{Name: draft.Name}
	if draft.Phone != "" {
		newClient.Phone = ptr.Ptr(draft.Phone)
	}
	if draft.Email != "" {
		newClient.Email = ptr.Ptr(draft.Email)
	}

	created, err := uc.clientRepo.Create(ctx, newClient)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create client: %v", ErrInternal, err)
	}
	return created, nil
}

// deleteOTP гасит использованный код по той паре (канал, контакт),
// которой фактически прошла верификация
func (uc *UseCase) deleteOTP(ctx context.Context, draft *domain.Draft) {
	method := draft.VerifiedVia
	contact := draft.VerifiedContact
	if method == "" || contact == "" {
		// Канал верификации не зафиксирован — гасим по каналу источника
		method = draft.VerifyMethodForSource()
		contact = draft.Contact(method)
	}
	if contact == "" {
		return
	}

	if err := uc.otpStore.Delete(ctx, method, contact, draft.ID); err != nil {
		uc.logger.Warn("PromoteDraft: failed to delete otp for draft=%s: %v", draft.ID, err)
	}
}
