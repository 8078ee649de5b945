package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"xdao.co/sbom/model"
)

var methods = []string{"Convert", "Validate", "Merge", "Diff"}

// Metrics records per-method request counts, labelled by outcome code,
// and latency histograms.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg when reg
// is non-nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sbom",
			Subsystem: "service",
			Name:      "requests_total",
			Help:      "BOM service requests by method and outcome code.",
		}, []string{"method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sbom",
			Subsystem: "service",
			Name:      "request_duration_seconds",
			Help:      "BOM service request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	// Pre-create the success series so they exist on first scrape.
	for _, name := range methods {
		_ = m.requests.WithLabelValues(name, "OK")
		_ = m.duration.WithLabelValues(name)
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.requests, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observe(method string, start time.Time, err error) {
	if m == nil {
		return
	}
	code := "OK"
	if err != nil {
		code = string(model.AsCodedError(err).Code)
	}
	m.requests.WithLabelValues(method, code).Inc()
	m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
