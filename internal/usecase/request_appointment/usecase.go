package request_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/availability"
)

// UseCase use case создания заявки на прием
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	doctorRepo       DoctorRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	doctorRepo DoctorRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		doctorRepo:       doctorRepo,
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

// Execute создает заявку в статусе pending и занимает слот
//
// Слот читается с блокировкой строки, затем помечается занятым условным UPDATE.
// Из двух конкурентных заявок на один слот проходит ровно одна, вторая получает ErrSlotUnavailable.
// Частичный уникальный индекс по живым записям страхует тот же инвариант на уровне БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("RequestAppointment: patient=%d, doctor=%d, availability=%d",
		req.PatientID, req.DoctorID, req.AvailabilityID)

	// 1. Только пациент может записаться
	if req.Role != domain.RolePatient {
		uc.logger.Warn("RequestAppointment: user=%d with role=%s is not a patient", req.PatientID, req.Role)
		return nil, ErrUnauthorized
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestAppointment: validation failed: %v", err)
		return nil, err
	}

	// 3. Врач должен существовать
	exists, err := uc.doctorRepo.Exists(ctx, req.DoctorID)
	if err != nil {
		uc.logger.Error("RequestAppointment: failed to check doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: check doctor: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("RequestAppointment: doctor id=%d not found", req.DoctorID)
		return nil, domain.NewValidationError(ErrInvalidInput, "doctor_id", "The selected doctor id is invalid.")
	}

	now := uc.timeProvider.Now()
	var result *domain.Appointment

	// 4. Проверка и бронирование слота в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем слот с блокировкой (FOR UPDATE)
		slot, err := uc.availabilityRepo.GetByID(txCtx, req.AvailabilityID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
				uc.logger.Warn("RequestAppointment: availability id=%d not found", req.AvailabilityID)
				return ErrSlotNotFound
			}
			uc.logger.Error("RequestAppointment: failed to get availability id=%d: %v", req.AvailabilityID, err)
			return fmt.Errorf("%w: get availability: %v", ErrInternal, err)
		}

		// 4.2. Слот должен принадлежать выбранному врачу
		if slot.DoctorID != req.DoctorID {
			uc.logger.Warn("RequestAppointment: availability id=%d belongs to doctor=%d, not %d",
				slot.ID, slot.DoctorID, req.DoctorID)
			return domain.NewValidationError(ErrInvalidInput, "availability_id", "The selected availability id is invalid.")
		}

		// 4.3. Слот свободен и не в прошлом
		if !slot.IsBookable(now) {
			uc.logger.Warn("RequestAppointment: availability id=%d is not bookable (booked=%t, date=%s)",
				slot.ID, slot.IsBooked, slot.Date.Format(domain.DateFormat))
			return ErrSlotUnavailable
		}

		// 4.4. Занимаем слот (compare-and-set)
		if err := uc.availabilityRepo.MarkBooked(txCtx, slot.ID); err != nil {
			if errors.Is(err, availabilityRepo.ErrSlotAlreadyBooked) {
				uc.logger.Warn("RequestAppointment: availability id=%d was booked concurrently", slot.ID)
				return ErrSlotUnavailable
			}
			uc.logger.Error("RequestAppointment: failed to mark availability id=%d booked: %v", slot.ID, err)
			return fmt.Errorf("%w: mark booked: %v", ErrInternal, err)
		}

		// 4.5. Создаем запись, копируя дату и время из слота
		appointment := &domain.Appointment{
			DoctorID:        req.DoctorID,
			PatientID:       req.PatientID,
			AvailabilityID:  &slot.ID,
			AppointmentDate: slot.Date,
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			RequestStatus:   domain.RequestStatusPending,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("RequestAppointment: availability id=%d already has a live appointment", slot.ID)
				return ErrSlotUnavailable
			}
			uc.logger.Error("RequestAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("RequestAppointment: created appointment id=%d for patient=%d on availability=%d",
		result.ID, result.PatientID, req.AvailabilityID)
	return result, nil
}

// mapTxError оставляет ошибки usecase как есть, ошибки транзакции превращает в ErrInternal
func (uc *UseCase) mapTxError(err error) error {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, ErrSlotNotFound),
		errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrInternal):
		return err
	default:
		uc.logger.Error("RequestAppointment: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	}
}
