package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Домен бронирования
	SlotsQueriesTotal        prometheus.Counter
	DraftsCreatedTotal       *prometheus.CounterVec
	AppointmentsCreatedTotal prometheus.Counter
	SlotConflictsTotal       prometheus.Counter

	// Верификация
	OTPIssuedTotal   *prometheus.CounterVec
	OTPVerifiedTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		SlotsQueriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slots_queries_total",
			Help:        "Total number of free-slots queries",
			ConstLabels: constLabels,
		}),

		DraftsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "drafts_created_total",
			Help:        "Total number of booking drafts created",
			ConstLabels: constLabels,
		}, []string{"source"}),

		AppointmentsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Total number of appointments created from drafts",
			ConstLabels: constLabels,
		}),

		SlotConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slot_conflicts_total",
			Help:        "Total number of promotions rejected due to slot conflict",
			ConstLabels: constLabels,
		}),

		OTPIssuedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "otp_issued_total",
			Help:        "Total number of one-time codes issued",
			ConstLabels: constLabels,
		}, []string{"method"}),

		OTPVerifiedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "otp_verified_total",
			Help:        "Total number of one-time code verification attempts",
			ConstLabels: constLabels,
		}, []string{"method", "result"}),
	}
}

// ObserveHTTPRequest учитывает завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncSlotsQuery инкрементирует счётчик запросов свободных слотов
func (m *Metrics) IncSlotsQuery() {
	m.SlotsQueriesTotal.Inc()
}

// IncDraftCreated инкрементирует счётчик созданных черновиков
func (m *Metrics) IncDraftCreated(source string) {
	m.DraftsCreatedTotal.WithLabelValues(source).Inc()
}

// IncAppointmentCreated инкрементирует счётчик созданных записей
func (m *Metrics) IncAppointmentCreated() {
	m.AppointmentsCreatedTotal.Inc()
}

// IncSlotConflict инкрементирует счётчик конфликтов при подтверждении
func (m *Metrics) IncSlotConflict() {
	m.SlotConflictsTotal.Inc()
}

// IncOTPIssued инкрементирует счётчик выданных кодов
func (m *Metrics) IncOTPIssued(method string) {
	m.OTPIssuedTotal.WithLabelValues(method).Inc()
}

// IncOTPVerified инкрементирует счётчик попыток проверки кода
func (m *Metrics) IncOTPVerified(method, result string) {
	m.OTPVerifiedTotal.WithLabelValues(method, result).Inc()
}
