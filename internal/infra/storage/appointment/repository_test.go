package appointment

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

func TestIsLiveSlotViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"live slot index", &pq.Error{Code: "23505", Constraint: liveSlotIndex}, true},
		{"wrapped", fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: liveSlotIndex}), true},
		{"other unique index", &pq.Error{Code: "23505", Constraint: "appointments_pkey"}, false},
		{"foreign key", &pq.Error{Code: "23503", Constraint: liveSlotIndex}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLiveSlotViolation(tt.err))
		})
	}
}

func TestNullableStatus(t *testing.T) {
	assert.Nil(t, nullableStatus(domain.AppointmentStatusNone))
	assert.Equal(t, "cancelled", nullableStatus(domain.AppointmentStatusCancelled))
}
