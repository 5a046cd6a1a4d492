package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const resultOK = "ok"

// AssociationMetrics содержит метрики движка позиций заказа.
type AssociationMetrics struct {
	// результат операций по видам ошибок
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec

	timelineEvents prometheus.Counter
	outboxEvents   prometheus.Counter

	inFlight prometheus.Gauge
}

// NewAssociationMetrics регистрирует метрики в prometheus.DefaultRegisterer.
func NewAssociationMetrics() *AssociationMetrics {
	return NewAssociationMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewAssociationMetricsWithRegisterer регистрирует метрики в переданном registerer
// (повторная регистрация возвращает уже существующие коллекторы).
func NewAssociationMetricsWithRegisterer(registerer prometheus.Registerer) *AssociationMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &AssociationMetrics{
		operations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "catalog_association_operations_total",
			Help: "Total number of order item operations by result",
		}, []string{"operation", "result"}),
		duration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "catalog_association_duration_seconds",
			Help:    "Duration of order item operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		timelineEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_timeline_events_total",
			Help: "Total number of order timeline events recorded",
		}),
		outboxEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "catalog_outbox_events_enqueued_total",
			Help: "Total number of order item events enqueued to the outbox",
		}),
		inFlight: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "catalog_association_in_flight",
			Help: "Number of order item operations currently running",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	return register(registerer, opts.Name, prometheus.NewCounter(opts))
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	return register(registerer, opts.Name, prometheus.NewCounterVec(opts, labels))
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	return register(registerer, opts.Name, prometheus.NewGauge(opts))
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	return register(registerer, opts.Name, prometheus.NewHistogramVec(opts, labels))
}

// register возвращает уже зарегистрированный коллектор того же типа вместо паники.
func register[C prometheus.Collector](registerer prometheus.Registerer, name string, collector C) C {
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(C)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", name))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector %q: %v", name, err))
	}
	return collector
}

// Start отмечает начало операции и возвращает функцию завершения,
// которая записывает длительность и результат (ok или вид ошибки).
func (m *AssociationMetrics) Start(operation string) func(result string) {
	if m == nil {
		return func(string) {}
	}

	started := time.Now()
	m.inFlight.Inc()
	return func(result string) {
		m.inFlight.Dec()
		if result == "" {
			result = resultOK
		}
		m.operations.WithLabelValues(operation, result).Inc()
		m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	}
}

// RecordTimelineEvent увеличивает счётчик событий timeline.
func (m *AssociationMetrics) RecordTimelineEvent() {
	if m == nil {
		return
	}
	m.timelineEvents.Inc()
}

// RecordOutboxEvent увеличивает счётчик событий, поставленных в outbox.
func (m *AssociationMetrics) RecordOutboxEvent() {
	if m == nil {
		return
	}
	m.outboxEvents.Inc()
}
