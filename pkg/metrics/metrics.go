package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DispatchMetrics - счетчики рассылок оповещений
type DispatchMetrics struct {
	registry *prometheus.Registry

	dispatchTotal    *prometheus.CounterVec
	targetsTotal     *prometheus.CounterVec
	skipReasonsTotal *prometheus.CounterVec
	deliveryDuration prometheus.Histogram
}

// NewDispatchMetrics создает счетчики в собственном реестре, чтобы тесты не конфликтовали
// с глобальным prometheus.DefaultRegisterer
func NewDispatchMetrics() *DispatchMetrics {
	reg := prometheus.NewRegistry()
	m := &DispatchMetrics{
		registry: reg,
		dispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alert_dispatch_total",
				Help: "Total number of completed alert dispatches",
			},
			[]string{"region"},
		),
		targetsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alert_targets_total",
				Help: "Targets processed by dispatch outcome",
			},
			[]string{"region", "outcome"},
		),
		skipReasonsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alert_skip_reasons_total",
				Help: "Targets excluded by the eligibility filter, by reason",
			},
			[]string{"reason"},
		),
		deliveryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "alert_delivery_duration_seconds",
				Help:    "Duration of a single push delivery attempt",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	reg.MustRegister(m.dispatchTotal, m.targetsTotal, m.skipReasonsTotal, m.deliveryDuration)
	return m
}

// ObserveDispatch учитывает завершенную рассылку
func (m *DispatchMetrics) ObserveDispatch(region string, reached, skipped, failed int) {
	if m == nil {
		return
	}
	m.dispatchTotal.WithLabelValues(region).Inc()
	m.targetsTotal.WithLabelValues(region, "reached").Add(float64(reached))
	m.targetsTotal.WithLabelValues(region, "skipped").Add(float64(skipped))
	m.targetsTotal.WithLabelValues(region, "failed").Add(float64(failed))
}

// ObserveSkip учитывает исключенного фильтром получателя
func (m *DispatchMetrics) ObserveSkip(reason string, count int) {
	if m == nil {
		return
	}
	m.skipReasonsTotal.WithLabelValues(reason).Add(float64(count))
}

// ObserveDelivery учитывает длительность одной попытки доставки
func (m *DispatchMetrics) ObserveDelivery(d time.Duration) {
	if m == nil {
		return
	}
	m.deliveryDuration.Observe(d.Seconds())
}

// Handler отдает метрики в формате Prometheus
func (m *DispatchMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
