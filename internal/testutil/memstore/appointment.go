package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/appointment"
)

// Appointments in-memory репозиторий записей
type Appointments struct {
	s *Store

	// FailCreate если задан, Create возвращает эту ошибку
	FailCreate error
}

// Create эмулирует частичный уникальный индекс "одна живая запись на слот"
func (r *Appointments) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if r.FailCreate != nil {
		return nil, r.FailCreate
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if a.HoldsSlot() {
		for _, existing := range r.s.appointments {
			if existing.DeletedAt == nil && existing.HoldsSlot() && *existing.AvailabilityID == *a.AvailabilityID {
				return nil, appointmentRepo.ErrSlotTaken
			}
		}
	}

	r.s.nextAppointmentID++
	id := r.s.nextAppointmentID
	a.ID = id
	a.CreatedAt = r.s.tick()
	a.UpdatedAt = a.CreatedAt
	r.s.appointments[id] = *a
	record(ctx, func() { delete(r.s.appointments, id) })

	out := *a
	return &out, nil
}

func (r *Appointments) GetByIDForDoctor(ctx context.Context, id, doctorID int64) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok || a.DeletedAt != nil || a.DoctorID != doctorID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *Appointments) GetByIDForParticipant(ctx context.Context, id, userID int64) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok || a.DeletedAt != nil || (a.PatientID != userID && a.DoctorID != userID) {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *Appointments) UpdateStatus(ctx context.Context, a *domain.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.appointments[a.ID]
	if !ok || stored.DeletedAt != nil {
		return appointmentRepo.ErrAppointmentNotFound
	}

	prev := stored
	stored.RequestStatus = a.RequestStatus
	stored.AppointmentStatus = a.AppointmentStatus
	stored.StartTime = a.StartTime
	stored.EndTime = a.EndTime
	stored.UpdatedAt = r.s.tick()
	r.s.appointments[a.ID] = stored
	a.UpdatedAt = stored.UpdatedAt

	id := a.ID
	record(ctx, func() { r.s.appointments[id] = prev })
	return nil
}

func (r *Appointments) ListPendingByDoctor(ctx context.Context, doctorID int64, page domain.PageRequest) ([]*domain.Appointment, int, error) {
	return r.listPage(page, func(a domain.Appointment) bool {
		return a.DoctorID == doctorID && a.RequestStatus == domain.RequestStatusPending
	})
}

func (r *Appointments) ListByPatient(ctx context.Context, patientID int64, page domain.PageRequest) ([]*domain.Appointment, int, error) {
	return r.listPage(page, func(a domain.Appointment) bool {
		return a.PatientID == patientID
	})
}

func (r *Appointments) CountLiveByAvailabilityIDs(ctx context.Context, availabilityIDs []int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := make(map[int64]bool, len(availabilityIDs))
	for _, id := range availabilityIDs {
		ids[id] = true
	}

	count := 0
	for _, a := range r.s.appointments {
		if a.DeletedAt == nil && a.HoldsSlot() && ids[*a.AvailabilityID] {
			count++
		}
	}
	return count, nil
}

// listPage новые записи первыми (ID монотонны так же, как created_at)
func (r *Appointments) listPage(page domain.PageRequest, match func(a domain.Appointment) bool) ([]*domain.Appointment, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	all := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		if a.DeletedAt == nil && match(a) {
			a := a
			all = append(all, &a)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := len(all)
	from := page.Offset()
	if from > total {
		from = total
	}
	to := from + page.PerPage
	if to > total {
		to = total
	}
	return all[from:to], total, nil
}
