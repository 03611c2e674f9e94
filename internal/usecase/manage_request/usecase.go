package manage_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/appointment"
)

// UseCase use case принятия или отклонения заявки врачом
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	notifier         Notifier
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		notifier:         notifier,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute применяет решение врача к заявке в статусе pending
//
// accept: request_status=accepted, appointment_status=scheduled, время записи перезаписывается, слот остается занятым.
// reject: request_status=rejected, слот освобождается.
// Заявка ищется среди заявок врача, чужая заявка дает ErrAppointmentNotFound.
// Уведомление о принятии отправляется после фиксации и не влияет на результат.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("ManageRequest: doctor=%d, appointment=%d, action=%s", req.DoctorID, req.AppointmentID, req.Action)

	// 1. Только врач управляет заявками
	if req.Role != domain.RoleDoctor {
		uc.logger.Warn("ManageRequest: user=%d with role=%s is not a doctor", req.DoctorID, req.Role)
		return nil, ErrUnauthorized
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ManageRequest: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 3. Переход статуса в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Заявка врача с блокировкой строки
		appointment, err := uc.appointmentRepo.GetByIDForDoctor(txCtx, req.AppointmentID, req.DoctorID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("ManageRequest: appointment id=%d not found for doctor=%d", req.AppointmentID, req.DoctorID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("ManageRequest: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: get appointment: %v", ErrInternal, err)
		}

		// 3.2. Решение принимается только по живой заявке в статусе pending
		if !appointment.IsPending() || appointment.IsCancelled() {
			uc.logger.Warn("ManageRequest: appointment id=%d is %s/%s, not pending",
				appointment.ID, appointment.RequestStatus, appointment.AppointmentStatus)
			return ErrNotPending
		}

		// 3.3. Применяем действие
		switch req.Action {
		case domain.ActionAccept:
			appointment.Accept(*req.StartTime, *req.EndTime)
		case domain.ActionReject:
			appointment.Reject()
		}

		if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment); err != nil {
			uc.logger.Error("ManageRequest: failed to update appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: update appointment: %v", ErrInternal, err)
		}

		// 3.4. Отклоненная заявка освобождает слот
		if req.Action == domain.ActionReject && appointment.AvailabilityID != nil {
			if err := uc.availabilityRepo.MarkFree(txCtx, *appointment.AvailabilityID); err != nil {
				uc.logger.Error("ManageRequest: failed to free availability id=%d: %v", *appointment.AvailabilityID, err)
				return fmt.Errorf("%w: free availability: %v", ErrInternal, err)
			}
		}

		result = appointment
		return nil
	})
	if err != nil {
		return nil, uc.mapTxError(err)
	}

	// 4. Уведомление пациента (fire-and-forget)
	if req.Action == domain.ActionAccept {
		uc.notifier.Notify(ctx, domain.NewAppointmentAcceptedNotification(result, uc.timeProvider.Now()))
	}

	uc.logger.Info("ManageRequest: appointment id=%d is now %s", result.ID, result.Lifecycle())
	return result, nil
}

// mapTxError оставляет ошибки usecase как есть, ошибки транзакции превращает в ErrInternal
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrNotPending),
		errors.Is(err, ErrInternal):
		return err
	default:
		uc.logger.Error("ManageRequest: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	}
}
