package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасно вызывать на nil (метрики выключены в конфиге)
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	AvailabilitiesGenerated *prometheus.CounterVec
	TimeSlotsProcessed      *prometheus.CounterVec
	AppointmentsBooked      *prometheus.CounterVec
	BookingFailures         *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует метрики в переданном registerer (используется в тестах)
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation", "status"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBInUse: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),

		DBIdle: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),

		AvailabilitiesGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "availabilities_generated_total",
			Help:        "Number of bookable availabilities created by generation",
			ConstLabels: constLabels,
		}, []string{}),

		TimeSlotsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "time_slots_processed_total",
			Help:        "Number of declared time slots marked as processed",
			ConstLabels: constLabels,
		}, []string{}),

		AppointmentsBooked: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_booked_total",
			Help:        "Number of confirmed appointments",
			ConstLabels: constLabels,
		}, []string{}),

		BookingFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_failures_total",
			Help:        "Number of rejected booking attempts by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues().Set(float64(open))
	m.DBInUse.WithLabelValues().Set(float64(inUse))
	m.DBIdle.WithLabelValues().Set(float64(idle))
	m.DBWaitCount.WithLabelValues().Set(float64(waitCount))
}

func (m *Metrics) AddAvailabilitiesGenerated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.AvailabilitiesGenerated.WithLabelValues().Add(float64(n))
}

func (m *Metrics) AddTimeSlotsProcessed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.TimeSlotsProcessed.WithLabelValues().Add(float64(n))
}

func (m *Metrics) IncAppointmentsBooked() {
	if m == nil {
		return
	}
	m.AppointmentsBooked.WithLabelValues().Inc()
}

func (m *Metrics) IncBookingFailure(reason string) {
	if m == nil {
		return
	}
	m.BookingFailures.WithLabelValues(reason).Inc()
}
