package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики операций менеджера заказов.
type OrderMetrics struct {
	// Счётчики успешных операций
	ordersCreated prometheus.Counter
	statusUpdates prometheus.Counter
	profitReports *prometheus.CounterVec

	// Счётчик неудач по операциям
	opFailures *prometheus.CounterVec

	// Гистограмма времени выполнения операций
	opDuration *prometheus.HistogramVec
}

// NewOrderMetrics создаёт метрики в default-регистре Prometheus.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created",
		}),
		statusUpdates: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_status_updates_total",
			Help: "Total number of successful order status updates",
		}),
		profitReports: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_profit_reports_total",
			Help: "Total number of profit reports computed",
		}, []string{"kind"}),
		opFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_operation_failures_total",
			Help: "Total number of failed order operations",
		}, []string{"operation"}),
		opDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "orders_operation_duration_seconds",
			Help:    "Duration of order operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *OrderMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordStatusUpdated увеличивает счётчик обновлений статуса.
func (m *OrderMetrics) RecordStatusUpdated() {
	m.statusUpdates.Inc()
}

// RecordProfitReport увеличивает счётчик отчётов о прибыли; kind — "month" или "year".
func (m *OrderMetrics) RecordProfitReport(kind string) {
	m.profitReports.WithLabelValues(kind).Inc()
}

// RecordFailure увеличивает счётчик неудач указанной операции.
func (m *OrderMetrics) RecordFailure(operation string) {
	m.opFailures.WithLabelValues(operation).Inc()
}

// RecordOpDuration записывает время выполнения операции.
func (m *OrderMetrics) RecordOpDuration(operation string, duration time.Duration) {
	m.opDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
