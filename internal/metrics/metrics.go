package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

type metrics struct {
	layoutOps   *prometheus.CounterVec
	layoutSize  prometheus.Histogram
	itemOps     *prometheus.CounterVec
	httpLatency *prometheus.HistogramVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		layoutOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "overview",
			Name:      "layout_operations_total",
			Help:      "Layout fetch, save and reset operations.",
		}, []string{"op", "result"}),
		layoutSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "overview",
			Name:      "layout_widgets",
			Help:      "Number of widgets in saved layouts.",
			Buckets:   []float64{0, 1, 2, 4, 6, 8, 12, 16, 24, 32},
		}),
		itemOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "overview",
			Name:      "widget_item_operations_total",
			Help:      "Quick note and calendar event operations.",
		}, []string{"kind", "op", "result"}),
		httpLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "overview",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of API requests by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// LayoutOp counts one layout operation ("fetch", "save", "reset").
func LayoutOp(op string, err error) {
	getMetrics().layoutOps.WithLabelValues(op, result(err)).Inc()
}

// LayoutSaved records the size of a stored layout.
func LayoutSaved(widgets int) {
	getMetrics().layoutSize.Observe(float64(widgets))
}

// ItemOp counts one note or event operation.
func ItemOp(kind, op string, err error) {
	getMetrics().itemOps.WithLabelValues(kind, op, result(err)).Inc()
}

// ObserveRequest records the latency of one HTTP request.
func ObserveRequest(method, route string, status int, seconds float64) {
	getMetrics().httpLatency.WithLabelValues(method, route, statusClass(status)).Observe(seconds)
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
