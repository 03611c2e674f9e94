package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBOpenConns     *prometheus.GaugeVec
	DBInUseConns    *prometheus.GaugeVec
	DBIdleConns     *prometheus.GaugeVec
	DBWaitCount     *prometheus.GaugeVec

	NotificationsTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в reg
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		DBOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notifications handled by the dispatcher",
			ConstLabels: constLabels,
		}, []string{"event", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConns,
		m.DBInUseConns,
		m.DBIdleConns,
		m.DBWaitCount,
		m.NotificationsTotal,
	)

	return m
}

// ObservePoolStats обновляет gauge-метрики пула соединений
func (m *Metrics) ObservePoolStats(dbName string, stats sql.DBStats) {
	m.DBOpenConns.WithLabelValues(dbName).Set(float64(stats.OpenConnections))
	m.DBInUseConns.WithLabelValues(dbName).Set(float64(stats.InUse))
	m.DBIdleConns.WithLabelValues(dbName).Set(float64(stats.Idle))
	m.DBWaitCount.WithLabelValues(dbName).Set(float64(stats.WaitCount))
}

// IncNotification увеличивает счетчик уведомлений
func (m *Metrics) IncNotification(event, result string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(event, result).Inc()
}
