package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// Результаты доставки для метрики notifications_total
const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultDropped = "dropped"
)

// Dispatcher асинхронная очередь уведомлений с одним воркером
// Notify никогда не блокирует вызывающего: при переполнении очереди событие теряется с предупреждением
type Dispatcher struct {
	sender  Sender
	queue   chan domain.Notification
	timeout time.Duration
	metrics Metrics
	logger  Logger

	mu        sync.RWMutex
	closed    bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewDispatcher создает диспетчер и запускает воркер. metrics может быть nil
func NewDispatcher(sender Sender, bufferSize int, timeout time.Duration, metrics Metrics, logger Logger) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	d := &Dispatcher{
		sender:  sender,
		queue:   make(chan domain.Notification, bufferSize),
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
		done:    make(chan struct{}),
	}

	go d.run()
	return d
}

// Notify ставит уведомление в очередь
// Контекст вызывающего не используется для доставки: запрос может завершиться раньше
func (d *Dispatcher) Notify(_ context.Context, n domain.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Notifier: dispatcher closed, dropping %s for appointment=%d", n.Event, n.AppointmentID)
		d.count(n.Event, resultDropped)
		return
	}

	select {
	case d.queue <- n:
	default:
		d.logger.Warn("Notifier: queue is full, dropping %s for appointment=%d", n.Event, n.AppointmentID)
		d.count(n.Event, resultDropped)
	}
}

// Close перестает принимать события и ждет доставки уже поставленных в очередь
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.sender.Send(ctx, n); err != nil {
		d.logger.Error("Notifier: %s failed to deliver %s for appointment=%d: %v",
			d.sender.Name(), n.Event, n.AppointmentID, err)
		d.count(n.Event, resultFailed)
		return
	}

	d.logger.Info("Notifier: %s delivered %s for appointment=%d", d.sender.Name(), n.Event, n.AppointmentID)
	d.count(n.Event, resultSent)
}

func (d *Dispatcher) count(event domain.NotificationEvent, result string) {
	if d.metrics != nil {
		d.metrics.IncNotification(string(event), result)
	}
}
