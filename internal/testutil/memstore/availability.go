package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/availability"
)

// Availabilities in-memory репозиторий слотов
type Availabilities struct {
	s *Store

	// AfterGet вызывается после чтения слота в GetByID, вне блокировки хранилища
	AfterGet func(id int64)
	// FailCreateBatch если задан, CreateBatch возвращает эту ошибку
	FailCreateBatch error
}

func (r *Availabilities) GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error) {
	r.s.mu.Lock()
	slot, ok := r.s.slots[id]
	r.s.mu.Unlock()

	if r.AfterGet != nil {
		r.AfterGet(id)
	}

	if !ok || slot.DeletedAt != nil {
		return nil, availabilityRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (r *Availabilities) MarkBooked(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.s.slots[id]
	if !ok || slot.IsBooked || slot.DeletedAt != nil {
		return availabilityRepo.ErrSlotAlreadyBooked
	}

	prev := slot
	slot.IsBooked = true
	slot.UpdatedAt = r.s.tick()
	r.s.slots[id] = slot
	record(ctx, func() { r.s.slots[id] = prev })
	return nil
}

func (r *Availabilities) MarkFree(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	slot, ok := r.s.slots[id]
	if !ok {
		return availabilityRepo.ErrSlotNotFound
	}

	prev := slot
	slot.IsBooked = false
	slot.UpdatedAt = r.s.tick()
	r.s.slots[id] = slot
	record(ctx, func() { r.s.slots[id] = prev })
	return nil
}

func (r *Availabilities) ListByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) ([]*domain.AvailabilitySlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.AvailabilitySlot, 0)
	for _, slot := range r.s.slots {
		if slot.DoctorID == doctorID && sameDate(slot.Date, date) && slot.DeletedAt == nil {
			slot := slot
			out = append(out, &slot)
		}
	}
	sortSlots(out)
	return out, nil
}

func (r *Availabilities) ListFreeByDoctors(ctx context.Context, doctorIDs []int64, fromDate time.Time, onDate *time.Time) ([]*domain.AvailabilitySlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wanted := make(map[int64]bool, len(doctorIDs))
	for _, id := range doctorIDs {
		wanted[id] = true
	}

	out := make([]*domain.AvailabilitySlot, 0)
	for _, slot := range r.s.slots {
		if !wanted[slot.DoctorID] || slot.IsBooked || slot.DeletedAt != nil {
			continue
		}
		if onDate != nil && !sameDate(slot.Date, *onDate) {
			continue
		}
		if onDate == nil && domain.IsDateBefore(slot.Date, fromDate) {
			continue
		}
		slot := slot
		out = append(out, &slot)
	}
	sortSlots(out)
	return out, nil
}

func (r *Availabilities) SoftDeleteByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int64
	now := r.s.tick()
	for id, slot := range r.s.slots {
		if slot.DoctorID != doctorID || !sameDate(slot.Date, date) || slot.DeletedAt != nil {
			continue
		}
		prev := slot
		deletedAt := now
		slot.DeletedAt = &deletedAt
		slot.UpdatedAt = now
		r.s.slots[id] = slot
		id := id
		record(ctx, func() { r.s.slots[id] = prev })
		removed++
	}
	return removed, nil
}

func (r *Availabilities) CreateBatch(ctx context.Context, slots []*domain.AvailabilitySlot) ([]*domain.AvailabilitySlot, error) {
	if r.FailCreateBatch != nil {
		return nil, r.FailCreateBatch
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, slot := range slots {
		r.s.nextSlotID++
		id := r.s.nextSlotID
		now := r.s.tick()
		slot.ID = id
		slot.IsBooked = false
		slot.CreatedAt = now
		slot.UpdatedAt = now
		r.s.slots[id] = *slot
		record(ctx, func() { delete(r.s.slots, id) })
	}
	return slots, nil
}

func sortSlots(slots []*domain.AvailabilitySlot) {
	sort.Slice(slots, func(i, j int) bool {
		if !sameDate(slots[i].Date, slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})
}
