package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smc"

// Metrics набор Prometheus метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil
type Metrics struct {
	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// База данных
	dbQueryDuration     *prometheus.HistogramVec
	dbOpenConnections   prometheus.Gauge
	dbInUseConnections  prometheus.Gauge
	dbIdleConnections   prometheus.Gauge
	dbWaitCount         prometheus.Gauge
	dbWaitDurationTotal prometheus.Gauge

	// Бизнес-метрики
	depositQuotesTotal         *prometheus.CounterVec
	depositPercentage          prometheus.Histogram
	normalizationFailuresTotal *prometheus.CounterVec
	reliabilityEventsTotal     *prometheus.CounterVec
	reliabilityScore           prometheus.Histogram
	consumedMessagesTotal      *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "db",
			Name:        "query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "open_connections",
			Help: "Number of established connections", ConstLabels: labels,
		}),
		dbInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "in_use_connections",
			Help: "Number of connections currently in use", ConstLabels: labels,
		}),
		dbIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "idle_connections",
			Help: "Number of idle connections", ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "wait_count",
			Help: "Total number of connections waited for", ConstLabels: labels,
		}),
		dbWaitDurationTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "db", Name: "wait_duration_seconds_total",
			Help: "Total time blocked waiting for a new connection", ConstLabels: labels,
		}),

		depositQuotesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "deposit",
			Name:        "quotes_total",
			Help:        "Deposit quotes issued, by policy reason",
			ConstLabels: labels,
		}, []string{"reason"}),
		depositPercentage: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "deposit",
			Name:        "percentage",
			Help:        "Distribution of required deposit percentages",
			ConstLabels: labels,
			Buckets:     []float64{0, 10, 20, 30, 50, 60, 70, 80, 100},
		}),
		normalizationFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "deposit",
			Name:        "amount_normalization_failures_total",
			Help:        "Rejected monetary literals, by failure kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		reliabilityEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "reliability",
			Name:        "events_total",
			Help:        "Reliability events by kind and result (applied, duplicate, rejected)",
			ConstLabels: labels,
		}, []string{"kind", "result"}),
		reliabilityScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "reliability",
			Name:        "score",
			Help:        "Client reliability score after an applied event",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(0, 10, 11),
		}),
		consumedMessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "events",
			Name:        "consumed_messages_total",
			Help:        "Booking lifecycle messages consumed from the broker, by result",
			ConstLabels: labels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUseConnections,
		m.dbIdleConnections,
		m.dbWaitCount,
		m.dbWaitDurationTotal,
		m.depositQuotesTotal,
		m.depositPercentage,
		m.normalizationFailuresTotal,
		m.reliabilityEventsTotal,
		m.reliabilityScore,
		m.consumedMessagesTotal,
	)

	return m
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConnections.Set(float64(stats.OpenConnections))
	m.dbInUseConnections.Set(float64(stats.InUse))
	m.dbIdleConnections.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
	m.dbWaitDurationTotal.Set(stats.WaitDuration.Seconds())
}

// ObserveDepositQuote фиксирует выданную котировку депозита
func (m *Metrics) ObserveDepositQuote(reason string, percentage int) {
	if m == nil {
		return
	}
	m.depositQuotesTotal.WithLabelValues(reason).Inc()
	m.depositPercentage.Observe(float64(percentage))
}

// IncNormalizationFailure фиксирует отклонённую сумму
func (m *Metrics) IncNormalizationFailure(kind string) {
	if m == nil {
		return
	}
	m.normalizationFailuresTotal.WithLabelValues(kind).Inc()
}

// ObserveReliabilityEvent фиксирует результат применения события
func (m *Metrics) ObserveReliabilityEvent(kind, result string) {
	if m == nil {
		return
	}
	m.reliabilityEventsTotal.WithLabelValues(kind, result).Inc()
}

// ObserveReliabilityScore фиксирует скор клиента после применения события
func (m *Metrics) ObserveReliabilityScore(score int) {
	if m == nil {
		return
	}
	m.reliabilityScore.Observe(float64(score))
}

// IncConsumedMessage фиксирует обработанное сообщение из брокера
func (m *Metrics) IncConsumedMessage(result string) {
	if m == nil {
		return
	}
	m.consumedMessagesTotal.WithLabelValues(result).Inc()
}
