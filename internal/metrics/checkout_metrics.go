package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics содержит метрики оформления заказов.
type CheckoutMetrics struct {
	// Счётчики операций
	ordersPlaced  prometheus.Counter
	orderFailures *prometheus.CounterVec

	// Гистограммы
	placementDuration prometheus.Histogram
	itemsPerOrder     prometheus.Histogram

	// Gauge для оформлений в полёте
	inFlight prometheus.Gauge

	// Счётчик опубликованных интеграционных событий
	eventsPublished prometheus.Counter
}

// NewCheckoutMetrics создаёт новый экземпляр метрик оформления.
func NewCheckoutMetrics() *CheckoutMetrics {
	return newCheckoutMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCheckoutMetricsWithRegisterer(registerer prometheus.Registerer) *CheckoutMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CheckoutMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Total number of orders placed successfully",
		}),
		orderFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_order_failures_total",
			Help: "Total number of rejected order placements by reason",
		}, []string{"reason"}),
		placementDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_order_placement_duration_seconds",
			Help:    "Duration of order placement in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		itemsPerOrder: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_order_items",
			Help:    "Number of line items per placed order",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		}),
		inFlight: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "storefront_checkout_in_flight",
			Help: "Number of order placements currently in progress",
		}),
		eventsPublished: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_order_events_published_total",
			Help: "Total number of order events published to the broker",
		}),
	}
}

// RecordOrderPlaced увеличивает счётчик успешных заказов и фиксирует размер заказа.
func (m *CheckoutMetrics) RecordOrderPlaced(itemCount int) {
	m.ordersPlaced.Inc()
	m.itemsPerOrder.Observe(float64(itemCount))
}

// RecordOrderFailed увеличивает счётчик отклонённых оформлений по причине.
func (m *CheckoutMetrics) RecordOrderFailed(reason string) {
	m.orderFailures.WithLabelValues(reason).Inc()
}

// RecordPlacementDuration записывает время оформления.
func (m *CheckoutMetrics) RecordPlacementDuration(duration time.Duration) {
	m.placementDuration.Observe(duration.Seconds())
}

// RecordInFlightStarted увеличивает количество активных оформлений.
func (m *CheckoutMetrics) RecordInFlightStarted() {
	m.inFlight.Inc()
}

// RecordInFlightFinished уменьшает количество активных оформлений.
func (m *CheckoutMetrics) RecordInFlightFinished() {
	m.inFlight.Dec()
}

// RecordEventPublished увеличивает счётчик опубликованных событий.
func (m *CheckoutMetrics) RecordEventPublished() {
	m.eventsPublished.Inc()
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
