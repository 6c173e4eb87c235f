package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics содержит метрики потока оформления заказа.
type CheckoutMetrics struct {
	// Счётчики стадий оформления
	checkoutStarted   prometheus.Counter
	checkoutCompleted prometheus.Counter
	checkoutFailed    prometheus.Counter

	// Счётчики корзины
	duplicateAdds prometheus.Counter

	// Гистограмма времени отправки заказа
	submitDuration prometheus.Histogram

	// Gauge текущего размера корзины
	cartItems prometheus.Gauge
}

// NewCheckoutMetrics создаёт метрики оформления в default-регистре.
func NewCheckoutMetrics() *CheckoutMetrics {
	return newCheckoutMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCheckoutMetricsWithRegisterer(registerer prometheus.Registerer) *CheckoutMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CheckoutMetrics{
		checkoutStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "larek_checkout_started_total",
			Help: "Total number of checkout flows started",
		}),
		checkoutCompleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "larek_checkout_completed_total",
			Help: "Total number of checkout flows completed successfully",
		}),
		checkoutFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "larek_checkout_failed_total",
			Help: "Total number of order submissions rejected or failed",
		}),
		duplicateAdds: registerCounter(registerer, prometheus.CounterOpts{
			Name: "larek_cart_duplicate_adds_total",
			Help: "Total number of rejected duplicate add-to-cart attempts",
		}),
		submitDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "larek_order_submit_duration_seconds",
			Help:    "Duration of order submission requests in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		cartItems: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "larek_cart_items",
			Help: "Current number of lines in the cart",
		}),
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

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCheckoutStarted увеличивает счётчик начатых оформлений.
func (m *CheckoutMetrics) RecordCheckoutStarted() {
	m.checkoutStarted.Inc()
}

// RecordCheckoutCompleted увеличивает счётчик успешных оформлений.
func (m *CheckoutMetrics) RecordCheckoutCompleted() {
	m.checkoutCompleted.Inc()
}

// RecordCheckoutFailed увеличивает счётчик отклонённых отправок.
func (m *CheckoutMetrics) RecordCheckoutFailed() {
	m.checkoutFailed.Inc()
}

// RecordDuplicateAdd увеличивает счётчик отклонённых повторных добавлений.
func (m *CheckoutMetrics) RecordDuplicateAdd() {
	m.duplicateAdds.Inc()
}

// RecordSubmitDuration записывает длительность отправки заказа.
func (m *CheckoutMetrics) RecordSubmitDuration(duration time.Duration) {
	m.submitDuration.Observe(duration.Seconds())
}

// SetCartItems обновляет gauge размера корзины.
func (m *CheckoutMetrics) SetCartItems(n int) {
	m.cartItems.Set(float64(n))
}
