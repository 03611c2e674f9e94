package set_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// UseCase use case замены расписания врача на дату
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

// Execute заменяет все слоты врача на дату новым набором свободных слотов
//
// Если хотя бы один текущий слот удерживает живая запись, операция отклоняется с ErrAvailabilityInUse
// и ничего не меняет. Прежние слоты удаляются мягко.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SetAvailability: doctor=%d, date=%s, slots=%d",
		req.DoctorID, req.Date.Format(domain.DateFormat), len(req.TimeSlots))

	// 1. Только врач управляет расписанием
	if req.Role != domain.RoleDoctor {
		uc.logger.Warn("SetAvailability: user=%d with role=%s is not a doctor", req.DoctorID, req.Role)
		return nil, ErrUnauthorized
	}

	// 2. У врача должен быть профиль
	exists, err := uc.doctorRepo.Exists(ctx, req.DoctorID)
	if err != nil {
		uc.logger.Error("SetAvailability: failed to check doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: check doctor: %v", ErrInternal, err)
	}
	if !exists {
		uc.logger.Warn("SetAvailability: doctor profile for user=%d not found", req.DoctorID)
		return nil, ErrDoctorNotFound
	}

	// 3. Валидация даты и слотов
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("SetAvailability: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	resp := &Response{Date: date}

	// 4. Замена расписания в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Текущие слоты на дату с блокировкой
		existing, err := uc.availabilityRepo.ListByDoctorAndDate(txCtx, req.DoctorID, date)
		if err != nil {
			uc.logger.Error("SetAvailability: failed to list slots: %v", err)
			return fmt.Errorf("%w: list slots: %v", ErrInternal, err)
		}

		// 4.2. Слоты с живыми записями снимать нельзя
		if len(existing) > 0 {
			ids := make([]int64, 0, len(existing))
			for _, slot := range existing {
				ids = append(ids, slot.ID)
			}

			live, err := uc.appointmentRepo.CountLiveByAvailabilityIDs(txCtx, ids)
			if err != nil {
				uc.logger.Error("SetAvailability: failed to count live appointments: %v", err)
				return fmt.Errorf("%w: count live appointments: %v", ErrInternal, err)
			}
			if live > 0 {
				uc.logger.Warn("SetAvailability: doctor=%d date=%s has %d live appointments",
					req.DoctorID, date.Format(domain.DateFormat), live)
				return ErrAvailabilityInUse
			}
		}

		// 4.3. Снимаем прежние слоты
		removed, err := uc.availabilityRepo.SoftDeleteByDoctorAndDate(txCtx, req.DoctorID, date)
		if err != nil {
			uc.logger.Error("SetAvailability: failed to remove slots: %v", err)
			return fmt.Errorf("%w: remove slots: %v", ErrInternal, err)
		}

		// 4.4. Создаем новые
		slots := make([]*domain.AvailabilitySlot, 0, len(req.TimeSlots))
		for _, tr := range req.TimeSlots {
			slots = append(slots, &domain.AvailabilitySlot{
				DoctorID:  req.DoctorID,
				Date:      date,
				StartTime: tr.Start,
				EndTime:   tr.End,
			})
		}

		created, err := uc.availabilityRepo.CreateBatch(txCtx, slots)
		if err != nil {
			uc.logger.Error("SetAvailability: failed to create slots: %v", err)
			return fmt.Errorf("%w: create slots: %v", ErrInternal, err)
		}

		resp.Slots = created
		resp.Removed = removed
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAvailabilityInUse), errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("SetAvailability: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("SetAvailability: doctor=%d date=%s replaced %d slots with %d",
		req.DoctorID, date.Format(domain.DateFormat), resp.Removed, len(resp.Slots))
	return resp, nil
}
