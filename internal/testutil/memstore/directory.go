package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	doctorRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/doctor"
	userRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/user"
)

// Doctors in-memory справочник врачей
type Doctors struct {
	s *Store
}

func (r *Doctors) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.doctors[userID]
	if !ok {
		return nil, doctorRepo.ErrDoctorNotFound
	}
	return &d, nil
}

func (r *Doctors) Exists(ctx context.Context, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.doctors[userID]
	return ok, nil
}

func (r *Doctors) ListAvailable(ctx context.Context, filter domain.AvailableDoctorsFilter, page domain.PageRequest) ([]*domain.Doctor, int, error) {
	all := r.filter(filter)

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

func (r *Doctors) ListAvailableOnDate(ctx context.Context, filter domain.AvailableDoctorsFilter) ([]*domain.Doctor, error) {
	return r.filter(filter), nil
}

func (r *Doctors) filter(filter domain.AvailableDoctorsFilter) []*domain.Doctor {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Doctor, 0)
	for _, d := range r.s.doctors {
		if filter.Specialization != nil && d.Specialization != *filter.Specialization {
			continue
		}
		if filter.City != nil && d.ClinicCity != *filter.City {
			continue
		}
		if filter.OnDate != nil && !r.hasFreeSlotOn(d.UserID, *filter.OnDate) {
			continue
		}
		d := d
		d.Availabilities = make([]*domain.AvailabilitySlot, 0)
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// hasFreeSlotOn вызывается под s.mu
func (r *Doctors) hasFreeSlotOn(doctorID int64, date time.Time) bool {
	for _, slot := range r.s.slots {
		if slot.DoctorID == doctorID && !slot.IsBooked && slot.DeletedAt == nil && sameDate(slot.Date, date) {
			return true
		}
	}
	return false
}

// Users in-memory справочник пользователей
type Users struct {
	s *Store
}

func (r *Users) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return &u, nil
}
