package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
)

type fakeSender struct {
	mu      sync.Mutex
	sent    []int64
	release chan struct{}
	err     error
}

func (s *fakeSender) Name() string { return "fake" }

func (s *fakeSender) Send(_ context.Context, n domain.Notification) error {
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n.AppointmentID)
	return s.err
}

func (s *fakeSender) ids() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.sent...)
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) IncNotification(event, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[event+"/"+result]++
}

func (m *countingMetrics) get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

func event(id int64) domain.Notification {
	return domain.Notification{Event: domain.EventAppointmentAccepted, AppointmentID: id}
}

func TestDispatcher_DeliversInOrderAndDrainsOnClose(t *testing.T) {
	sender := &fakeSender{}
	metrics := &countingMetrics{}
	d := NewDispatcher(sender, 10, time.Second, metrics, logger.Nop())

	for i := int64(1); i <= 5; i++ {
		d.Notify(context.Background(), event(i))
	}
	d.Close()

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, sender.ids())
	assert.Equal(t, 5, metrics.get("appointment_accepted/sent"))
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sender := &fakeSender{release: make(chan struct{})}
	metrics := &countingMetrics{}
	d := NewDispatcher(sender, 1, time.Second, metrics, logger.Nop())

	// Первое событие забирает воркер и блокируется в Send
	d.Notify(context.Background(), event(1))
	require.Eventually(t, func() bool { return len(d.queue) == 0 }, time.Second, 5*time.Millisecond)

	d.Notify(context.Background(), event(2)) // занимает буфер
	start := time.Now()
	d.Notify(context.Background(), event(3)) // теряется
	assert.Less(t, time.Since(start), 100*time.Millisecond, "notify must not block")

	close(sender.release)
	d.Close()

	assert.Equal(t, []int64{1, 2}, sender.ids())
	assert.Equal(t, 1, metrics.get("appointment_accepted/dropped"))
}

func TestDispatcher_CountsFailures(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	metrics := &countingMetrics{}
	d := NewDispatcher(sender, 4, time.Second, metrics, logger.Nop())

	d.Notify(context.Background(), event(1))
	d.Close()

	assert.Equal(t, 1, metrics.get("appointment_accepted/failed"))
}

func TestDispatcher_NotifyAfterClose(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, 4, time.Second, nil, logger.Nop())
	d.Close()
	d.Close()

	assert.NotPanics(t, func() { d.Notify(context.Background(), event(1)) })
	assert.Empty(t, sender.ids())
}
