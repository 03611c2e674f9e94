package request_appointment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

func TestValidateRequest(t *testing.T) {
	long := strings.Repeat("a", domain.MaxNotesLength+1)

	tests := []struct {
		name       string
		req        Request
		wantFields []string
	}{
		{"valid", Request{DoctorID: 1, AvailabilityID: 2}, nil},
		{"notes too long", Request{DoctorID: 1, AvailabilityID: 2, Notes: &long}, []string{"notes"}},
		{"missing both", Request{}, []string{"doctor_id", "availability_id"}},
		{"negative availability", Request{DoctorID: 1, AvailabilityID: -3}, []string{"availability_id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(&tt.req)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Len(t, vErr.Fields, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, vErr.Fields, field)
			}
		})
	}
}
