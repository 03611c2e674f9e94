package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
	"github.com/m04kA/SMC-ClinicBooking/pkg/metrics"
)

const (
	testSecret = "test-secret"
	testIssuer = "clinic-booking"
)

type requestEntry struct {
	requestID string
	method    string
	path      string
	status    int
}

type recordingRequestLogger struct {
	entries []requestEntry
}

func (l *recordingRequestLogger) Request(requestID, method, path string, status int, _ time.Duration) {
	l.entries = append(l.entries, requestEntry{requestID, method, path, status})
}

func identityHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		require.True(t, ok)
		role, ok := GetRole(r.Context())
		require.True(t, ok)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"user_id": userID, "role": role})
	})
}

func serveWithAuth(t *testing.T, header string) *httptest.ResponseRecorder {
	auth := NewAuthenticator(testSecret, testIssuer, logger.Nop())
	req := httptest.NewRequest(http.MethodGet, "/appointments/mine", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	auth.Middleware(identityHandler(t)).ServeHTTP(rec, req)
	return rec
}

func TestAuth_ValidToken(t *testing.T) {
	token, err := IssueToken(testSecret, testIssuer, 42, domain.RoleDoctor, time.Hour)
	require.NoError(t, err)

	rec := serveWithAuth(t, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 42, body["user_id"])
	assert.Equal(t, "doctor", body["role"])
}

func TestAuth_Rejections(t *testing.T) {
	expired, err := IssueToken(testSecret, testIssuer, 42, domain.RolePatient, -time.Minute)
	require.NoError(t, err)
	foreign, err := IssueToken("other-secret", testIssuer, 42, domain.RolePatient, time.Hour)
	require.NoError(t, err)
	wrongIssuer, err := IssueToken(testSecret, "someone-else", 42, domain.RolePatient, time.Hour)
	require.NoError(t, err)
	badRole, err := IssueToken(testSecret, testIssuer, 42, domain.Role("nurse"), time.Hour)
	require.NoError(t, err)
	badSubject, err := IssueToken(testSecret, testIssuer, 0, domain.RolePatient, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", msgMissingToken},
		{"not bearer", "Basic dXNlcjpwYXNz", msgMissingToken},
		{"garbage", "Bearer not-a-jwt", msgInvalidToken},
		{"expired", "Bearer " + expired, msgInvalidToken},
		{"foreign secret", "Bearer " + foreign, msgInvalidToken},
		{"wrong issuer", "Bearer " + wrongIssuer, msgInvalidToken},
		{"unknown role", "Bearer " + badRole, msgInvalidToken},
		{"zero subject", "Bearer " + badSubject, msgInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveWithAuth(t, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"Operation failed"}`, rec.Body.String())
}

func TestLoggingAndMetrics(t *testing.T) {
	reqLog := &recordingRequestLogger{}
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(RequestID, Logging(reqLog), MetricsMiddleware(m))
	r.HandleFunc("/appointments/{id}/cancel", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}).Methods(http.MethodPost)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/7/cancel", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}

	require.Len(t, reqLog.entries, 2)
	assert.Equal(t, http.StatusBadRequest, reqLog.entries[0].status)
	assert.Equal(t, "/appointments/7/cancel", reqLog.entries[0].path)
	assert.NotEmpty(t, reqLog.entries[0].requestID)

	var metric dto.Metric
	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/appointments/{id}/cancel", "400")
	require.NoError(t, counter.Write(&metric))
	assert.Equal(t, float64(2), metric.GetCounter().GetValue())
}
