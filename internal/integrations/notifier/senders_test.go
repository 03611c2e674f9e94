package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/testutil/memstore"
)

func accepted() domain.Notification {
	return domain.Notification{
		Event:           domain.EventAppointmentAccepted,
		AppointmentID:   7,
		PatientID:       20,
		DoctorID:        10,
		AppointmentDate: "2026-03-11",
		StartTime:       "09:00",
		EndTime:         "09:30",
	}
}

func TestWebhookSender(t *testing.T) {
	var got domain.Notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewWebhookSender(srv.URL, time.Second)
	require.NoError(t, sender.Send(context.Background(), accepted()))

	assert.Equal(t, int64(7), got.AppointmentID)
	assert.Equal(t, "09:00", got.StartTime.String())
}

func TestWebhookSender_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewWebhookSender(srv.URL, time.Second).Send(context.Background(), accepted())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "503")
}

func TestSMTPSender_UnknownPatient(t *testing.T) {
	store := memstore.New()
	sender := NewSMTPSender("localhost", 2525, "", "", "clinic@example.test", store.Users())

	err := sender.Send(context.Background(), accepted())
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestBuildMessage(t *testing.T) {
	m := buildMessage("clinic@example.test", "patient@example.test", accepted())

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "From: clinic@example.test")
	assert.Contains(t, raw, "To: patient@example.test")
	assert.Contains(t, raw, "Subject: Appointment confirmed")
	assert.Contains(t, raw, "2026-03-11 from 09:00 to 09:30")
}
