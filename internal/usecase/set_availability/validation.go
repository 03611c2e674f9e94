package set_availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// validateRequest проверяет дату и набор слотов
func validateRequest(req *Request, now time.Time) error {
	fields := domain.FieldErrors{}

	if req.Date.IsZero() {
		fields.Add("date", "The date field is required.")
	} else if domain.IsDateBefore(req.Date, now) {
		fields.Add("date", "The date must be a date after or equal to today.")
	}

	switch {
	case len(req.TimeSlots) == 0:
		fields.Add("time_slots", "The time slots field is required.")
	case len(req.TimeSlots) > domain.MaxSlotsPerDay:
		fields.Add("time_slots", fmt.Sprintf("The time slots may not have more than %d items.", domain.MaxSlotsPerDay))
	default:
		validateSlots(fields, req.TimeSlots)
	}

	if !fields.Empty() {
		return &domain.ValidationError{Err: ErrInvalidInput, Fields: fields}
	}
	return nil
}

// validateSlots проверяет формат, порядок концов и отсутствие пересечений
func validateSlots(fields domain.FieldErrors, slots []domain.TimeRange) {
	valid := true
	for i, slot := range slots {
		startKey := fmt.Sprintf("time_slots.%d.start_time", i)
		endKey := fmt.Sprintf("time_slots.%d.end_time", i)

		startErr := slot.Start.Validate()
		endErr := slot.End.Validate()
		if startErr != nil {
			fields.Add(startKey, "The start time does not match the format H:i.")
			valid = false
		}
		if endErr != nil {
			fields.Add(endKey, "The end time does not match the format H:i.")
			valid = false
		}
		if startErr == nil && endErr == nil && !slot.IsValid() {
			fields.Add(endKey, "The end time must be a time after start time.")
			valid = false
		}
	}

	if !valid {
		return
	}

	// Пересечения ищем только среди корректных интервалов
	order := make([]int, len(slots))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return slots[order[a]].Start.IsBefore(slots[order[b]].Start)
	})
	for k := 1; k < len(order); k++ {
		prev, cur := slots[order[k-1]], slots[order[k]]
		if cur.Start.IsBefore(prev.End) {
			fields.Add(fmt.Sprintf("time_slots.%d", order[k]), "The time slot overlaps another slot.")
		}
	}
}
